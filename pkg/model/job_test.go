package model_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/model"
)

func TestJobIDIsPointerIdentity(t *testing.T) {
	a := &model.Single{Dims: model.NewDimensions().Set(model.DimID, "a")}
	b := &model.Single{Dims: model.NewDimensions().Set(model.DimID, "a")} // structurally identical, distinct job

	if model.JobID(a) == model.JobID(b) {
		t.Fatal("structurally identical Singles must not share a JobID")
	}
	if model.JobID(a) != model.JobID(a) {
		t.Fatal("the same Single must always map to the same JobID")
	}
}

func TestJobIDDistinguishesSingleAndMulti(t *testing.T) {
	s := &model.Single{}
	m := &model.Multi{Jobs: []*model.Single{s}}

	if model.JobID(s) == model.JobID(m) {
		t.Fatal("a Single and a Multi wrapping it must have distinct JobIDs")
	}
}

func TestStrictOrderPermutationOnlyDeclaredOrder(t *testing.T) {
	gen := model.StrictOrderPermutation{}
	perms := gen.Permutations(3, 5)

	if len(perms) != 1 {
		t.Fatalf("len(perms) = %d, want 1", len(perms))
	}
	want := []int{0, 1, 2}
	for i, v := range want {
		if perms[0][i] != v {
			t.Fatalf("perms[0] = %v, want %v", perms[0], want)
		}
	}
}
