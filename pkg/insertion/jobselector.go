package insertion

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// JobSelector returns the portion of ic.Solution.Required the driver loop
// should attempt this round. It is up to the implementation whether that
// is every required job or some subset.
type JobSelector interface {
	Select(ic *solution.InsertionContext) []model.Job
}

// AllJobSelector returns every required job, shuffled so that repeated
// runs over the same stuck job don't always try the same ordering first.
type AllJobSelector struct{}

func (AllJobSelector) Select(ic *solution.InsertionContext) []model.Job {
	jobs := append([]model.Job{}, ic.Solution.Required...)
	if ic.Environment == nil || ic.Environment.Random == nil {
		return jobs
	}
	random := ic.Environment.Random
	for i := len(jobs) - 1; i > 0; i-- {
		j := random.UniformInt(0, i)
		jobs[i], jobs[j] = jobs[j], jobs[i]
	}
	return jobs
}
