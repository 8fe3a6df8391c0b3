package objective

import (
	"math"

	"k8s.io/klog/v2"

	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// BalanceMetric selects which per-route quantity Balance measures
// variation across.
type BalanceMetric int

const (
	// BalanceDistance measures variation in each route's total distance.
	BalanceDistance BalanceMetric = iota
	// BalanceDuration measures variation in each route's total duration.
	BalanceDuration
	// BalanceActivityCount measures variation in each route's tour
	// activity count (a Multi job counts once per activity).
	BalanceActivityCount
)

// Balance penalizes uneven work distribution across active routes via the
// coefficient of variation (stddev / mean) of the chosen metric, a
// scale-free ratio rather than a fixed normalization constant, since
// route workloads have no natural upper bound.
type Balance struct {
	Metric BalanceMetric
	Weight float64
}

// NewBalance builds a Balance objective over metric with the given
// weight (applied multiplicatively to the coefficient of variation).
func NewBalance(metric BalanceMetric, weight float64) *Balance {
	return &Balance{Metric: metric, Weight: weight}
}

func (b *Balance) Name() string { return "balance" }

func (b *Balance) Evaluate(sol *solution.SolutionContext) float64 {
	var values []float64
	for _, rc := range sol.Routes {
		if len(rc.Route.TourActivities()) == 0 {
			continue
		}
		values = append(values, b.metricValue(rc))
	}
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	stddev := math.Sqrt(variance)

	cv := stddev / mean
	klog.V(4).Infof("objective: balance metric=%d mean=%.4f stddev=%.4f cv=%.4f", b.Metric, mean, stddev, cv)
	return b.Weight * cv
}

func (b *Balance) metricValue(rc *solution.RouteContext) float64 {
	switch b.Metric {
	case BalanceDistance:
		v, _ := constraint.TotalDistance(rc)
		return v
	case BalanceDuration:
		v, _ := constraint.TotalDuration(rc)
		return v
	case BalanceActivityCount:
		return float64(len(rc.Route.TourActivities()))
	default:
		return 0
	}
}
