package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/trueshade/api/catalog"
	"github.com/trueshade/api/colorscience"
	"github.com/trueshade/api/models"
	"github.com/trueshade/api/sampler"
)

// readAnalysisInput accepts either a JSON pixel list or a multipart upload of
// an image plus the skin regions found by the client's landmark model
func (app *Application) readAnalysisInput(w http.ResponseWriter, r *http.Request) ([]colorscience.Pixel, []string, error) {
	if app.Config.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, app.Config.MaxUploadBytes)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return app.readImageInput(r)
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, &colorscience.InvalidColorInputError{Index: -1, Reason: fmt.Sprintf("request body: %v", err)}
	}

	pixels, err := colorscience.PixelsFromTriples(req.Pixels)
	if err != nil {
		return nil, nil, err
	}
	return pixels, req.Brands, nil
}

func (app *Application) readImageInput(r *http.Request) ([]colorscience.Pixel, []string, error) {
	if err := r.ParseMultipartForm(app.Config.MaxUploadBytes); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", sampler.ErrUndecodableImage, err)
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: missing image field", sampler.ErrUndecodableImage)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", sampler.ErrUndecodableImage, err)
	}

	img, err := sampler.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	img = sampler.Fit(img, app.Config.MaxImageDimension)

	regions, err := sampler.ParseRegions([]byte(r.FormValue("regions")))
	if err != nil {
		return nil, nil, err
	}

	pixels, err := sampler.SampleRegions(img, regions)
	if err != nil {
		return nil, nil, err
	}

	var brands []string
	for _, b := range strings.Split(r.FormValue("brands"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brands = append(brands, b)
		}
	}
	return pixels, brands, nil
}

// POST /v1/analyze
func (app *Application) analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requireMethod(w, r, http.MethodPost, ErrPOST)
		return
	}

	pixels, brands, err := app.readAnalysisInput(w, r)
	if err != nil {
		app.analysisError(w, r, err)
		return
	}

	result, err := app.Analyzer.Analyze(pixels, brands)
	if err != nil {
		app.analysisError(w, r, err)
		return
	}

	if user, ok := userFromContext(r); ok && app.AnalysisRepo != nil {
		if _, err := app.AnalysisRepo.Create(models.NewAnalysisRecord(user.UserID, result)); err != nil {
			log.Printf("Error saving analysis for user %s: %v", user.UserID, err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// POST /v1/analyze/debug
func (app *Application) analyzeDebug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requireMethod(w, r, http.MethodPost, ErrPOST)
		return
	}

	pixels, _, err := app.readAnalysisInput(w, r)
	if err != nil {
		app.analysisError(w, r, err)
		return
	}

	// estimation failures are part of the debug payload
	debug, _ := app.Analyzer.Debug(pixels)
	writeJSON(w, http.StatusOK, debug)
}

// GET /v1/brands
func (app *Application) getBrands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireMethod(w, r, http.MethodGet, ErrGET)
		return
	}

	cat, err := app.Catalog.Get()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	brands := []models.BrandSummary{}
	for _, brand := range cat.Brands() {
		brands = append(brands, models.BrandSummary{Brand: brand, ShadeCount: len(cat.ShadesFor(brand))})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"source": app.Catalog.SourceName(),
		"brands": brands,
	})
}

// GET /v1/products?brand=
func (app *Application) getProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireMethod(w, r, http.MethodGet, ErrGET)
		return
	}

	cat, err := app.Catalog.Get()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	brands := cat.Brands()
	if brand := strings.TrimSpace(r.URL.Query().Get("brand")); brand != "" {
		brands = []string{brand}
	}

	products := []models.ShadeResponse{}
	for _, brand := range brands {
		for _, shade := range cat.ShadesFor(brand) {
			products = append(products, shadeResponse(shade))
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(products),
		"products": products,
	})
}

func shadeResponse(shade catalog.Shade) models.ShadeResponse {
	return models.ShadeResponse{
		ProductID:   shade.ProductID,
		Brand:       shade.Brand,
		ProductLine: shade.ProductLine,
		Name:        shade.Name,
		Hex:         shade.Hex,
		Lab:         [3]float64{shade.Lab.L, shade.Lab.A, shade.Lab.B},
		Undertone:   string(shade.Undertone),
	}
}
