package ruin

import "testing"

// This (index, distance) curve has one clear knee: the point farthest
// from the chord joining its first and last points sits at y=2.
func TestGetMaxCurvatureFindsTheKneePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0}, {1, 0.25}, {2, 0.5}, {3, 0.75}, {4, 1},
		{6, 2}, {7, 4}, {8, 6}, {9, 8},
	}

	got := getMaxCurvature(points)

	if got != 2 {
		t.Fatalf("getMaxCurvature = %v, want 2", got)
	}
}

func TestEstimateEpsilonEmptyDistances(t *testing.T) {
	if got := estimateEpsilon(nil); got != 0 {
		t.Fatalf("estimateEpsilon(nil) = %v, want 0", got)
	}
}
