package transport

import (
	"fmt"
	"sort"

	"github.com/vrpsolver/vrpcore/pkg/model"
)

// Matrix is a square n*n distance/duration table over the set of unique
// locations for one profile, optionally stamped with a timestamp when
// time-aware routing is enabled.
type Matrix struct {
	ProfileIndex int
	Timestamp    *float64
	Size         int
	Durations    []float64
	Distances    []float64
}

func (m *Matrix) at(table []float64, from, to model.Location) float64 {
	return table[int(from)*m.Size+int(to)]
}

// MatrixTransportCost implements Cost over one or more Matrix instances
// per profile. When several timestamped matrices exist for a profile,
// lookup binary-searches for the nearest matrix whose timestamp is not
// after the query instant — linear interpolation is deliberately not
// performed.
type MatrixTransportCost struct {
	byProfile map[int][]*Matrix // sorted ascending by Timestamp; untimed matrices have len==1
}

// NewMatrixTransportCost indexes matrices by profile, sorting each
// profile's timestamped matrices ascending for binary search.
func NewMatrixTransportCost(matrices []*Matrix) (*MatrixTransportCost, error) {
	byProfile := make(map[int][]*Matrix)
	for _, m := range matrices {
		if m.Size*m.Size != len(m.Durations) || m.Size*m.Size != len(m.Distances) {
			return nil, fmt.Errorf("transport: matrix for profile %d is not size*size square", m.ProfileIndex)
		}
		byProfile[m.ProfileIndex] = append(byProfile[m.ProfileIndex], m)
	}
	for _, list := range byProfile {
		sort.Slice(list, func(i, j int) bool {
			return timestampOf(list[i]) < timestampOf(list[j])
		})
	}
	return &MatrixTransportCost{byProfile: byProfile}, nil
}

func timestampOf(m *Matrix) float64 {
	if m.Timestamp == nil {
		return 0
	}
	return *m.Timestamp
}

// matrixAt returns the matrix in effect at the given departure instant:
// the nearest earlier (or equal) timestamped matrix, falling back to the
// first if departure precedes every timestamp.
func (c *MatrixTransportCost) matrixAt(profileIdx int, departure float64) *Matrix {
	list := c.byProfile[profileIdx]
	if len(list) == 0 {
		return nil
	}
	// binary search for the rightmost matrix with timestamp <= departure
	idx := sort.Search(len(list), func(i int) bool {
		return timestampOf(list[i]) > departure
	})
	if idx == 0 {
		return list[0]
	}
	return list[idx-1]
}

func (c *MatrixTransportCost) Duration(profile model.Profile, from, to model.Location, departure float64) float64 {
	m := c.matrixAt(profile.Index, departure)
	if m == nil {
		return UnreachableValue
	}
	v := m.at(m.Durations, from, to)
	if v < 0 {
		return UnreachableValue
	}
	return v
}

func (c *MatrixTransportCost) Distance(profile model.Profile, from, to model.Location, departure float64) float64 {
	m := c.matrixAt(profile.Index, departure)
	if m == nil {
		return UnreachableValue
	}
	v := m.at(m.Distances, from, to)
	if v < 0 {
		return UnreachableValue
	}
	return v
}

// UnreachableValue is the typed sentinel value returned by MatrixTransportCost;
// equals model.Unreachable but kept local to avoid an import cycle on the
// constant's float conversion at call sites.
const UnreachableValue = float64(model.Unreachable)
