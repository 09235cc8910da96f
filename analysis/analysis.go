package analysis

import (
	"fmt"

	"github.com/trueshade/api/catalog"
	"github.com/trueshade/api/colorscience"
	"github.com/trueshade/api/matcher"
	"github.com/trueshade/api/models"
)

// CatalogProvider hands out the shared shade catalog
type CatalogProvider interface {
	Get() (*catalog.Catalog, error)
}

// Analyzer runs estimation, classification and matching for one set of skin pixels
type Analyzer struct {
	Estimator *colorscience.ToneEstimator
	Matcher   matcher.Matcher
	Catalog   CatalogProvider
}

// NewAnalyzer builds an analyzer from an estimator configuration
func NewAnalyzer(cfg colorscience.EstimatorConfig, m matcher.Matcher, provider CatalogProvider) (*Analyzer, error) {
	estimator, err := colorscience.NewToneEstimator(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid estimator config: %w", err)
	}
	return &Analyzer{Estimator: estimator, Matcher: m, Catalog: provider}, nil
}

// Analyze estimates the skin tone of pixels and matches it against brands. An
// empty brands list matches every catalog brand.
func (a *Analyzer) Analyze(pixels []colorscience.Pixel, brands []string) (models.AnalysisResult, error) {
	estimate, err := a.Estimator.Estimate(pixels)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	cat, err := a.Catalog.Get()
	if err != nil {
		return models.AnalysisResult{}, err
	}

	skin := estimate.Lab
	undertone := colorscience.ClassifyUndertone(skin)

	return models.AnalysisResult{
		SkinLab:          [3]float64{skin.L, skin.A, skin.B},
		SkinHex:          colorscience.LabToHex(skin),
		Undertone:        string(undertone),
		PantoneFamily:    colorscience.ApproximatePantone(skin),
		SupportingPixels: estimate.Support,
		Matches:          a.Matcher.MatchAll(cat, skin, undertone, brands),
	}, nil
}

// Debug reports the intermediate values of the pipeline. Estimation failures
// are recorded in the returned value as well as returned.
func (a *Analyzer) Debug(pixels []colorscience.Pixel) (models.AnalysisDebug, error) {
	estimate, stats, err := a.Estimator.EstimateWithStats(pixels)

	debug := models.AnalysisDebug{
		Status:          "success",
		TotalPixels:     stats.Total,
		ValidPixels:     stats.Valid,
		ShadowPixels:    stats.Shadows,
		HighlightPixels: stats.Highlights,
		NumClusters:     a.Estimator.Config().NumClusters,
	}
	if err != nil {
		debug.Status = "error"
		debug.Error = err.Error()
		return debug, err
	}

	skin := estimate.Lab
	debug.SkinLab = &[3]float64{skin.L, skin.A, skin.B}
	debug.SupportingPixels = estimate.Support
	debug.Undertone = string(colorscience.ClassifyUndertone(skin))
	debug.PantoneFamily = colorscience.ApproximatePantone(skin)
	return debug, nil
}
