package population_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/population"
)

func TestRosomaxaStartsInExplorationAfterEnoughIndividuals(t *testing.T) {
	config := population.DefaultRosomaxaConfig(3)
	config.InitialSize = 2
	r := population.NewRosomaxa(rng.NewDefault(1), config)

	r.Add(individual(5))
	if r.Phase() != population.PhaseExploration {
		t.Fatalf("Phase() = %v before InitialSize reached, want still exploring (no phase flip yet)", r.Phase())
	}
	r.Add(individual(3))

	if r.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", r.Size())
	}
}

func TestRosomaxaSwitchesToExploitationPastExplorationRatio(t *testing.T) {
	config := population.DefaultRosomaxaConfig(3)
	config.InitialSize = 1
	r := population.NewRosomaxa(rng.NewDefault(1), config)
	r.Add(individual(5))

	r.OnGeneration(population.Statistics{Progress: 0.95})

	if r.Phase() != population.PhaseExploitation {
		t.Fatalf("Phase() = %v after progress passed ExplorationRatio, want exploitation", r.Phase())
	}
}

func TestRosomaxaSelectIncludesCurrentBest(t *testing.T) {
	config := population.DefaultRosomaxaConfig(2)
	config.InitialSize = 1
	r := population.NewRosomaxa(rng.NewDefault(1), config)
	r.AddAll([]population.Individual{individual(9), individual(1), individual(4)})

	selected := r.Select()
	if len(selected) == 0 {
		t.Fatal("Select() returned nothing")
	}
	if selected[0].Fitness[0] != 1 {
		t.Fatalf("Select()[0] = %v, want current best (fitness 1)", selected[0])
	}
}

func TestRosomaxaReportsImprovement(t *testing.T) {
	config := population.DefaultRosomaxaConfig(2)
	r := population.NewRosomaxa(rng.NewDefault(1), config)

	if improved := r.Add(individual(5)); !improved {
		t.Error("first add into an empty elite archive must report improvement")
	}
	if improved := r.Add(individual(9)); improved {
		t.Error("adding a worse individual must not report improvement")
	}
}
