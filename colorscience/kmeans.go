package colorscience

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// clustering is the outcome of one k-means fit
type clustering struct {
	Centers [][]float64
	Labels  []int
	Sizes   []int
	Inertia float64
}

type kmeans struct {
	k             int
	restarts      int
	maxIterations int
	rng           *rand.Rand
}

func newKMeans(k, restarts, maxIterations int, seed int64) *kmeans {
	return &kmeans{
		k:             k,
		restarts:      restarts,
		maxIterations: maxIterations,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

// fit runs every restart from the same random stream and keeps the lowest
// inertia. The first run wins ties, so results only depend on the seed.
func (km *kmeans) fit(points [][]float64) (clustering, error) {
	if km.k < 1 || km.k > len(points) {
		return clustering{}, errClusteringDegenerate
	}

	var best clustering
	for run := 0; run < km.restarts; run++ {
		result := km.lloyd(points, km.seedCenters(points))
		if run == 0 || result.Inertia < best.Inertia {
			best = result
		}
	}
	return best, nil
}

// seedCenters picks initial centres with k-means++ weighting
func (km *kmeans) seedCenters(points [][]float64) [][]float64 {
	centers := make([][]float64, 0, km.k)
	centers = append(centers, clonePoint(points[km.rng.Intn(len(points))]))

	dist := make([]float64, len(points))
	for i, p := range points {
		d := floats.Distance(p, centers[0], 2)
		dist[i] = d * d
	}

	for len(centers) < km.k {
		total := floats.Sum(dist)

		next := 0
		if total == 0 {
			// every point already sits on a centre
			next = km.rng.Intn(len(points))
		} else {
			target := km.rng.Float64() * total
			cumulative := 0.0
			next = len(points) - 1
			for i, d := range dist {
				cumulative += d
				if cumulative > target {
					next = i
					break
				}
			}
		}

		center := clonePoint(points[next])
		centers = append(centers, center)
		for i, p := range points {
			d := floats.Distance(p, center, 2)
			if d*d < dist[i] {
				dist[i] = d * d
			}
		}
	}

	return centers
}

func (km *kmeans) lloyd(points [][]float64, centers [][]float64) clustering {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}
	sizes := make([]int, len(centers))
	dims := len(points[0])

	for iter := 0; iter < km.maxIterations; iter++ {
		changed := false
		for i, p := range points {
			nearest := nearestCenter(p, centers)
			if nearest != labels[i] {
				labels[i] = nearest
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, len(centers))
		for c := range sums {
			sums[c] = make([]float64, dims)
			sizes[c] = 0
		}
		for i, p := range points {
			floats.Add(sums[labels[i]], p)
			sizes[labels[i]]++
		}
		for c := range centers {
			// an empty cluster keeps its previous centre
			if sizes[c] == 0 {
				continue
			}
			floats.Scale(1/float64(sizes[c]), sums[c])
			centers[c] = sums[c]
		}
	}

	for c := range sizes {
		sizes[c] = 0
	}
	inertia := 0.0
	for i, p := range points {
		sizes[labels[i]]++
		d := floats.Distance(p, centers[labels[i]], 2)
		inertia += d * d
	}

	return clustering{Centers: centers, Labels: labels, Sizes: sizes, Inertia: inertia}
}

// nearestCenter returns the closest centre; the lowest index wins ties
func nearestCenter(p []float64, centers [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, center := range centers {
		d := floats.Distance(p, center, 2)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// largestCluster returns the index with the most members, lowest index on ties
func largestCluster(sizes []int) int {
	best := 0
	for c, n := range sizes {
		if n > sizes[best] {
			best = c
		}
	}
	return best
}

func clonePoint(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
