package colour

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand"
	"slices"
)

// KMeansExtractor finds representative colours of an image using k-means clustering.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
}

// Cluster is a representative colour and the share of sampled pixels assigned to it.
type Cluster struct {
	Colour RGB
	Weight float64
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    2000,
	}
}

// Clusters groups the image's pixels into at most count clusters.
// Clusters are returned in descending weight order.
func (e *KMeansExtractor) Clusters(img image.Image, count int) ([]Cluster, error) {
	if img == nil {
		return nil, errors.New("image cannot be nil")
	}
	if count < 1 || count > 256 {
		return nil, fmt.Errorf("cluster count must be between 1 and 256, got %d", count)
	}

	points := e.samplePixels(img)
	if len(points) == 0 {
		return nil, errors.New("no pixels found in image")
	}

	// Fewer unique colours than clusters: every unique colour is its own cluster.
	unique := make(map[RGB]int)
	for _, p := range points {
		unique[p.rgb()]++
	}
	if count >= len(unique) {
		clusters := make([]Cluster, 0, len(unique))
		for rgb, n := range unique {
			clusters = append(clusters, Cluster{Colour: rgb, Weight: float64(n) / float64(len(points))})
		}
		sortClusters(clusters)
		return clusters, nil
	}

	centroids, weights := e.kmeans(points, count)
	clusters := make([]Cluster, len(centroids))
	for i, c := range centroids {
		clusters[i] = Cluster{Colour: c.rgb(), Weight: weights[i]}
	}
	sortClusters(clusters)
	return clusters, nil
}

// Dominant returns the colour of the heaviest cluster when the image is split into count clusters.
func (e *KMeansExtractor) Dominant(img image.Image, count int) (RGB, error) {
	clusters, err := e.Clusters(img, count)
	if err != nil {
		return RGB{}, err
	}
	return clusters[0].Colour, nil
}

// sortClusters orders clusters by weight, heaviest first, breaking ties by hex for determinism.
func sortClusters(clusters []Cluster) {
	slices.SortFunc(clusters, func(a, b Cluster) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.Colour.Hex(), b.Colour.Hex())
	})
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

func (p point3D) rgb() RGB {
	return RGB{R: clampChannel(p.R), G: clampChannel(p.G), B: clampChannel(p.B)}
}

func clampChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// samplePixels samples pixels from the image.
// Large images are grid sampled down to roughly maxSamples pixels.
func (e *KMeansExtractor) samplePixels(img image.Image) []point3D {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	step := 1
	if totalPixels > e.maxSamples {
		step = max(int(math.Sqrt(float64(totalPixels)/float64(e.maxSamples))), 1)
	}

	points := make([]point3D, 0, min(totalPixels, e.maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			rgb := ToRGB(img.At(x, y))
			points = append(points, point3D{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)})
			if len(points) >= e.maxSamples {
				return points
			}
		}
	}
	return points
}

// kmeans performs k-means clustering on the sampled points.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(points []point3D, k int) ([]point3D, []float64) {
	centroids := e.initializeCentroids(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Converged once fewer than 1% of assignments move.
		if iter > 0 && float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := recalculateCentroids(points, assignments, centroids)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	// Final assignment against the settled centroids.
	for i, point := range points {
		assignments[i] = findNearestCentroid(point, centroids)
	}

	weights := make([]float64, k)
	for _, assignment := range assignments {
		weights[assignment]++
	}
	for i := range weights {
		weights[i] /= float64(len(points))
	}

	return centroids, weights
}

// initializeCentroids picks initial centroids using k-means++.
func (e *KMeansExtractor) initializeCentroids(points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rand.Intn(len(points))])

	for len(centroids) < k {
		distances := make([]float64, len(points))
		totalDistance := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				minDist = math.Min(minDist, point.distance(centroid))
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rand.Float64() * totalDistance
		cumulative := 0.0
		for i, dist := range distances {
			cumulative += dist
			if dist > 0 && cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if dist := point.distance(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its points.
// Empty clusters keep their previous centroid.
func recalculateCentroids(points []point3D, assignments []int, previous []point3D) []point3D {
	sums := make([]point3D, len(previous))
	counts := make([]int, len(previous))
	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, len(previous))
	for i := range previous {
		if counts[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return centroids
}
