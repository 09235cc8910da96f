package colorscience

import (
	"errors"
	"fmt"
)

// EstimatorConfig controls outlier filtering and clustering
type EstimatorConfig struct {
	NumClusters   int     `json:"num_clusters"`
	MinLightness  float64 `json:"min_lightness"`
	MaxLightness  float64 `json:"max_lightness"`
	MinSamples    int     `json:"min_samples"`
	Restarts      int     `json:"restarts"`
	MaxIterations int     `json:"max_iterations"`
	Seed          int64   `json:"seed"`
}

// DefaultEstimatorConfig returns the stock clustering parameters
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		NumClusters:   5,
		MinLightness:  20,
		MaxLightness:  240,
		MinSamples:    10,
		Restarts:      10,
		MaxIterations: 300,
		Seed:          42,
	}
}

// Validate checks that the configuration can produce an estimate
func (c EstimatorConfig) Validate() error {
	if c.NumClusters < 1 {
		return fmt.Errorf("num_clusters must be at least 1, got %d", c.NumClusters)
	}
	if c.MinLightness >= c.MaxLightness {
		return fmt.Errorf("outlier bounds (%v, %v) leave no valid lightness range", c.MinLightness, c.MaxLightness)
	}
	if c.MinSamples < 1 {
		return fmt.Errorf("min_samples must be at least 1, got %d", c.MinSamples)
	}
	if c.Restarts < 1 {
		return fmt.Errorf("restarts must be at least 1, got %d", c.Restarts)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations)
	}
	return nil
}

// ToneEstimate is the dominant skin colour and the number of samples in its cluster
type ToneEstimate struct {
	Lab     LabColor `json:"lab"`
	Support int      `json:"support"`
}

// SampleStats summarises outlier filtering for one set of pixels
type SampleStats struct {
	Total      int `json:"total"`
	Valid      int `json:"valid"`
	Shadows    int `json:"shadows"`
	Highlights int `json:"highlights"`
}

// ToneEstimator finds the dominant colour of a set of skin pixels
type ToneEstimator struct {
	config EstimatorConfig
}

// NewToneEstimator validates cfg and returns an estimator
func NewToneEstimator(cfg EstimatorConfig) (*ToneEstimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ToneEstimator{config: cfg}, nil
}

// Config returns the estimator's configuration
func (e *ToneEstimator) Config() EstimatorConfig {
	return e.config
}

// Filter converts pixels to LAB and drops shadow and highlight samples
func (e *ToneEstimator) Filter(pixels []Pixel) ([][]float64, SampleStats) {
	stats := SampleStats{Total: len(pixels)}
	points := make([][]float64, 0, len(pixels))

	for _, p := range pixels {
		lab := RGBToLab(p)
		switch {
		case lab.L <= e.config.MinLightness:
			stats.Shadows++
		case lab.L >= e.config.MaxLightness:
			stats.Highlights++
		default:
			points = append(points, lab.Slice())
		}
	}

	stats.Valid = len(points)
	return points, stats
}

// Estimate returns the centroid of the largest k-means cluster. It fails with
// an InsufficientSamplesError when too few samples survive filtering.
func (e *ToneEstimator) Estimate(pixels []Pixel) (ToneEstimate, error) {
	points, stats := e.Filter(pixels)
	return e.estimate(points, stats)
}

func (e *ToneEstimator) estimate(points [][]float64, stats SampleStats) (ToneEstimate, error) {
	if stats.Valid < e.config.MinSamples {
		return ToneEstimate{}, &InsufficientSamplesError{Valid: stats.Valid, Required: e.config.MinSamples}
	}

	k := e.config.NumClusters
	if k > len(points) {
		k = len(points)
	}

	result, err := newKMeans(k, e.config.Restarts, e.config.MaxIterations, e.config.Seed).fit(points)
	if err != nil {
		if errors.Is(err, errClusteringDegenerate) {
			return ToneEstimate{}, &InsufficientSamplesError{Valid: stats.Valid, Required: e.config.MinSamples}
		}
		return ToneEstimate{}, err
	}

	dominant := largestCluster(result.Sizes)
	return ToneEstimate{
		Lab:     labFromSlice(result.Centers[dominant]),
		Support: result.Sizes[dominant],
	}, nil
}

// EstimateWithStats is Estimate plus the filtering summary, for diagnostics
func (e *ToneEstimator) EstimateWithStats(pixels []Pixel) (ToneEstimate, SampleStats, error) {
	points, stats := e.Filter(pixels)
	estimate, err := e.estimate(points, stats)
	return estimate, stats, err
}
