package hyperheuristic

import "math"

// annealedLearningRate returns the Monte Carlo update's learning rate at
// progress t (0 at the start of a run, 1 at its termination condition):
// about 0.15 at t=0, rising toward 0.25 as t approaches 1, so late
// updates weigh a freshly observed reward more heavily than early ones.
func annealedLearningRate(t float64) float64 {
	return 1 / (4 + math.Exp(-4*(t-0.25)))
}

// annealedExploration returns the EpsilonWeighted policy's chance of
// picking a uniformly random action instead of a weighted one at
// progress t: about 0.15 at t=0, decaying to about 0.01 at t=1.
func annealedExploration(t float64) float64 {
	return 0.2 * (1 - 1/(1+math.Exp(-4*(t-0.25))))
}

// monteCarloUpdate folds reward into estimate at the given learning
// rate, the single-step (no bootstrapping) Monte Carlo rule: the new
// estimate is a weighted blend of the old one and the freshly observed
// reward.
func monteCarloUpdate(estimate, reward, rate float64) float64 {
	return (1-rate)*estimate + rate*reward
}
