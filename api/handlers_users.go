package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/trueshade/api/datastore"
	"github.com/trueshade/api/models"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// GET /v1/users/me/history?limit=
func (app *Application) getHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireMethod(w, r, http.MethodGet, ErrGET)
		return
	}

	user, _ := userFromContext(r)

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxHistoryLimit {
			app.badRequest(w, r, errors.New("limit must be a number between 1 and 50"))
			return
		}
		limit = parsed
	}

	analyses, err := app.AnalysisRepo.ListByUser(user.UserID, limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.AnalysisHistory{
		UserID:        user.UserID,
		TotalAnalyses: len(analyses),
		Analyses:      analyses,
	})
}

// GET /v1/users/me/latest
func (app *Application) getLatestAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireMethod(w, r, http.MethodGet, ErrGET)
		return
	}

	user, _ := userFromContext(r)

	latest, err := app.AnalysisRepo.GetLatest(user.UserID)
	if err != nil {
		if datastore.IsNoRows(err) {
			app.notFound(w, r, errors.New("no analyses found for this user"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, latest)
}

// GET, POST /v1/users/me/favorites
func (app *Application) favorites(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		app.listFavorites(w, r)
	case http.MethodPost:
		app.addFavorite(w, r)
	default:
		app.requireMethod(w, r, http.MethodGet+", "+http.MethodPost, errors.New("GET or POST method required for this endpoint"))
	}
}

func (app *Application) listFavorites(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r)

	favorites, err := app.FavoriteRepo.ListByUser(user.UserID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
	})
}

func (app *Application) addFavorite(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r)

	var payload struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	productID := strings.TrimSpace(payload.ProductID)
	if productID == "" {
		app.badRequest(w, r, errors.New("productId is required"))
		return
	}

	if _, err := app.ProductRepo.GetByID(productID); err != nil {
		if datastore.IsNoRows(err) {
			app.notFound(w, r, errors.New("product not found"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	favorite, err := app.FavoriteRepo.Add(user.UserID, productID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, favorite)
}

// DELETE /v1/users/me/favorites/{productID}
func (app *Application) removeFavorite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		app.requireMethod(w, r, http.MethodDelete, ErrDELETE)
		return
	}

	user, _ := userFromContext(r)

	removed, err := app.FavoriteRepo.Remove(user.UserID, r.PathValue("productID"))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if !removed {
		app.notFound(w, r, errors.New("favorite not found"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
