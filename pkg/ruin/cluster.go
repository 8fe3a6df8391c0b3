package ruin

import (
	"math"

	"github.com/vrpsolver/vrpcore/internal/neighbourhood"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// ClusterRemoval pre-clusters every job offline with a DBSCAN-like sweep
// over the neighbourhood graph, then at ruin time removes a random
// cluster (extending into the clusters that follow it, in order, if the
// chunk target isn't reached by the first one).
type ClusterRemoval struct {
	Limit    JobRemovalLimit
	clusters [][]model.Job
}

// NewClusterRemoval builds a ClusterRemoval over jobs, auto-estimating
// the DBSCAN epsilon radius from the curvature point of the minPts-th
// nearest-neighbour distance distribution.
func NewClusterRemoval(jobs []model.Job, graph *neighbourhood.Graph, minPts int, limit JobRemovalLimit) *ClusterRemoval {
	eps := estimateEpsilon(graph.KthNearestDistances(minPts))
	return &ClusterRemoval{Limit: limit, clusters: dbscanClusters(jobs, graph, eps, minPts)}
}

func (c *ClusterRemoval) Run(ic *solution.InsertionContext) {
	sc := ic.Solution
	random := randomOf(ic)
	if random == nil || len(c.clusters) == 0 {
		return
	}
	target := chunkSize(ic, c.Limit)
	if target == 0 {
		return
	}

	removed := 0
	start := random.UniformInt(0, len(c.clusters)-1)
	for offset := 0; offset < len(c.clusters) && removed < target; offset++ {
		for _, job := range c.clusters[(start+offset)%len(c.clusters)] {
			if removed >= target {
				break
			}
			if ruinJob(sc, job) {
				removed++
			}
		}
	}
}

// estimateEpsilon picks the curvature ("knee") point of distances, an
// ascending-sorted distribution: the value whose index is farthest (by
// perpendicular distance) from the chord connecting the first and last
// points of the index/distance curve.
func estimateEpsilon(distances []float64) float64 {
	if len(distances) == 0 {
		return 0
	}
	points := make([][2]float64, len(distances))
	for i, d := range distances {
		points[i] = [2]float64{float64(i), d}
	}
	return getMaxCurvature(points)
}

func getMaxCurvature(points [][2]float64) float64 {
	first, last := points[0], points[len(points)-1]
	dx, dy := last[0]-first[0], last[1]-first[1]
	denom := math.Hypot(dx, dy)
	if denom == 0 {
		return first[1]
	}
	bestY, bestDist := first[1], -1.0
	for _, p := range points {
		cross := dx*(p[1]-first[1]) - dy*(p[0]-first[0])
		d := math.Abs(cross) / denom
		if d > bestDist {
			bestDist, bestY = d, p[1]
		}
	}
	return bestY
}

// dbscanClusters runs a DBSCAN pass over jobs using graph's shortest-path
// distance as the neighbourhood metric, eps as the radius, and minPts as
// the core-point density threshold. Noise points (below minPts density)
// form no cluster and are left alone by ClusterRemoval.
func dbscanClusters(jobs []model.Job, graph *neighbourhood.Graph, eps float64, minPts int) [][]model.Job {
	n := len(jobs)
	visited := make([]bool, n)
	clusterOf := make([]int, n)
	for i := range clusterOf {
		clusterOf[i] = -1
	}

	var clusters [][]model.Job
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		seeds := regionQuery(jobs, graph, i, eps)
		if len(seeds) < minPts {
			continue
		}

		clusterIdx := len(clusters)
		clusters = append(clusters, nil)
		clusterOf[i] = clusterIdx
		clusters[clusterIdx] = append(clusters[clusterIdx], jobs[i])

		queue := append([]int{}, seeds...)
		for k := 0; k < len(queue); k++ {
			j := queue[k]
			if !visited[j] {
				visited[j] = true
				jNeighbours := regionQuery(jobs, graph, j, eps)
				if len(jNeighbours) >= minPts {
					queue = append(queue, jNeighbours...)
				}
			}
			if clusterOf[j] == -1 {
				clusterOf[j] = clusterIdx
				clusters[clusterIdx] = append(clusters[clusterIdx], jobs[j])
			}
		}
	}
	return clusters
}

func regionQuery(jobs []model.Job, graph *neighbourhood.Graph, i int, eps float64) []int {
	var out []int
	for j := range jobs {
		if j == i {
			continue
		}
		d, err := graph.ShortestPathDistance(jobs[i], jobs[j])
		if err != nil || math.IsInf(d, 1) {
			continue
		}
		if d <= eps {
			out = append(out, j)
		}
	}
	return out
}
