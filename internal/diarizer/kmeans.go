package diarizer

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const kmeansMaxIter = 100

// kmeans clusters points into k groups and returns one label per point.
// Seeding is farthest-point from the first point, so results are deterministic.
// Labels are renumbered in order of first appearance.
func kmeans(points [][]float64, k int) []int {
	if len(points) == 0 {
		return nil
	}
	if k > len(points) {
		k = len(points)
	}
	if k <= 1 {
		return make([]int, len(points))
	}

	centroids := seedCentroids(points, k)
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, p := range points {
			best := nearest(p, centroids)
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		updateCentroids(points, labels, centroids)
	}

	return renumber(labels)
}

func seedCentroids(points [][]float64, k int) [][]float64 {
	centroids := [][]float64{clone(points[0])}
	for len(centroids) < k {
		far, farDist := 0, -1.0
		for i, p := range points {
			d := floats.Distance(p, centroids[nearest(p, centroids)], 2)
			if d > farDist {
				far, farDist = i, d
			}
		}
		centroids = append(centroids, clone(points[far]))
	}
	return centroids
}

func updateCentroids(points [][]float64, labels []int, centroids [][]float64) {
	dim := len(points[0])
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, p := range points {
		counts[labels[i]]++
		for d, v := range p {
			sums[labels[i]][d] += v
		}
	}
	for c := range centroids {
		// An empty cluster keeps its previous centroid.
		if counts[c] == 0 {
			continue
		}
		for d := range centroids[c] {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

func nearest(p []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := floats.Distance(p, centroid, 2); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func renumber(labels []int) []int {
	mapping := map[int]int{}
	out := make([]int, len(labels))
	for i, l := range labels {
		if _, ok := mapping[l]; !ok {
			mapping[l] = len(mapping)
		}
		out[i] = mapping[l]
	}
	return out
}

// standardize rescales every dimension to zero mean and unit variance so
// the energy coefficient does not dominate the distance.
func standardize(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return points
	}
	dim := len(points[0])
	out := make([][]float64, len(points))
	for i := range out {
		out[i] = make([]float64, dim)
	}
	col := make([]float64, len(points))
	for d := 0; d < dim; d++ {
		for i, p := range points {
			col[i] = p[d]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std <= 1e-12 {
			continue
		}
		for i, v := range col {
			out[i][d] = (v - mean) / std
		}
	}
	return out
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}
