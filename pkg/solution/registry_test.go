package solution_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

func twoActorGroup() (*model.Fleet, *model.Actor, *model.Actor) {
	detail := model.ShiftDetail{StartLocation: model.Location(1), StartTime: model.NewTimeWindow(0, 100)}
	a1 := &model.Actor{Vehicle: model.Vehicle{Profile: model.Profile{Index: 0}}, Detail: detail}
	a2 := &model.Actor{Vehicle: model.Vehicle{Profile: model.Profile{Index: 0}}, Detail: detail}
	return model.NewFleet([]*model.Actor{a1, a2}), a1, a2
}

func TestRegistryNextUnusedSkipsUsed(t *testing.T) {
	fleet, a1, a2 := twoActorGroup()
	reg := solution.NewRegistry(fleet)

	reg.MarkUsed(a1)
	got := reg.NextUnused(a1.Key())
	if got != a2 {
		t.Fatalf("NextUnused = %v, want a2 (a1 is used)", got)
	}

	reg.MarkUsed(a2)
	if reg.NextUnused(a1.Key()) != nil {
		t.Fatal("NextUnused should be nil once every actor in the group is used")
	}
}

func TestRegistryMarkFreeRestoresAvailability(t *testing.T) {
	fleet, a1, _ := twoActorGroup()
	reg := solution.NewRegistry(fleet)

	reg.MarkUsed(a1)
	reg.MarkFree(a1)

	if reg.IsUsed(a1) {
		t.Fatal("IsUsed should be false after MarkFree")
	}
}

func TestRegistryCloneIsIndependent(t *testing.T) {
	fleet, a1, _ := twoActorGroup()
	reg := solution.NewRegistry(fleet)
	reg.MarkUsed(a1)

	clone := reg.Clone()
	clone.MarkFree(a1)

	if !reg.IsUsed(a1) {
		t.Fatal("mutating the clone must not affect the original registry")
	}
}
