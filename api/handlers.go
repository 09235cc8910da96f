package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/trueshade/api/datastore"
	"github.com/trueshade/api/models"
)

const minPasswordLength = 8

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (app *Application) databaseName() string {
	if app.databaseEnabled() {
		return "PostgreSQL"
	}
	return "Local"
}

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "TrueShade API - Skin Tone Analysis & Shade Matching",
		"version":  Version,
		"status":   "running",
		"database": app.databaseName(),
		"catalog":  app.Catalog.SourceName(),
	})
}

// GET /health
func (app *Application) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireMethod(w, r, http.MethodGet, ErrGET)
		return
	}

	catalogStatus := "ready"
	if _, err := app.Catalog.Get(); err != nil {
		catalogStatus = "unavailable: " + err.Error()
	}

	estimator := app.Analyzer.Estimator.Config()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"services": map[string]string{
			"skin_analysis":  "ready (LAB + K-Means)",
			"shade_matching": catalogStatus,
			"database":       app.databaseName(),
		},
		"configuration": map[string]interface{}{
			"catalog_source":        app.Catalog.SourceName(),
			"num_clusters":          estimator.NumClusters,
			"min_valid_samples":     estimator.MinSamples,
			"outlier_bounds":        []float64{estimator.MinLightness, estimator.MaxLightness},
			"max_matches_per_brand": app.Analyzer.Matcher.MaxMatches,
			"undertone_bonus":       app.Analyzer.Matcher.UndertoneBonus,
			"max_image_dimension":   app.Config.MaxImageDimension,
			"history_retention":     app.Config.HistoryRetentionDays,
			"dev_mode":              app.Config.DevMode,
		},
	})
}

// POST /v1/auth/signup
func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requireMethod(w, r, http.MethodPost, ErrPOST)
		return
	}

	userSignup := &models.UserSignupRequest{}
	errParsingJson := json.NewDecoder(r.Body).Decode(userSignup)
	if errParsingJson != nil {
		app.badJSONRequest(w, r, errParsingJson)
		return
	}

	userSignup.Email = strings.TrimSpace(userSignup.Email)
	if _, err := mail.ParseAddress(userSignup.Email); err != nil {
		app.badRequest(w, r, errors.New("a valid email is required"))
		return
	}
	if len(userSignup.Password) < minPasswordLength {
		app.badRequest(w, r, fmt.Errorf("password must be at least %d characters", minPasswordLength))
		return
	}

	// Check if email already exists
	_, getErr := app.UserRepo.GetUserByEmail(userSignup.Email)
	if getErr == nil {
		app.userAlreadyExists(w, r, getErr)
		return
	}
	if !datastore.IsNoRows(getErr) {
		app.internalServerError(w, r, getErr)
		return
	}

	newUser, newUserErr := models.NewUser(*userSignup)
	if newUserErr != nil {
		app.internalServerError(w, r, newUserErr)
		return
	}

	storedUser, errStoringNewUser := app.UserRepo.Create(newUser)
	if errStoringNewUser != nil {
		app.internalServerError(w, r, errStoringNewUser)
		return
	}

	writeJSON(w, http.StatusCreated, storedUser)
}

// POST /v1/auth/login
func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requireMethod(w, r, http.MethodPost, ErrPOST)
		return
	}

	creds := &models.Credentials{}
	if err := json.NewDecoder(r.Body).Decode(creds); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if creds.DeviceFingerprint == "" {
		app.badRequest(w, r, errors.New("deviceFingerprint is required"))
		return
	}

	user, err := app.UserRepo.ValidateAndGetUser(*creds)
	if err != nil {
		if errors.Is(err, datastore.ErrInvalidCredentials) {
			app.invalidCredentials(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	deviceExpiry := time.Now().Add(time.Second * time.Duration(app.Config.JwtRefreshDuration))
	device := models.UserDevice{
		UserID:      user.UserID,
		Fingerprint: creds.DeviceFingerprint,
		DeviceData:  r.Header.Get("User-Agent"),
		Expiry:      deviceExpiry,
	}

	if err := app.UserRepo.CreateDevice(device); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.setTokenCookie(w, user, creds.DeviceFingerprint, models.ScopeAuthentication); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if err := app.setTokenCookie(w, user, creds.DeviceFingerprint, models.ScopeRefresh); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// POST /v1/auth/refresh - Issue a new access token from the refresh cookie
func (app *Application) refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requireMethod(w, r, http.MethodPost, ErrPOST)
		return
	}

	cookie, err := r.Cookie(models.JWT.REFRESH_COOKIE_NAME)
	if err != nil {
		app.invalidAuthorization(w, r, err)
		return
	}

	claims, err := models.ValidateJWTToken(cookie.Value, app.Config.JwtSecret)
	if err != nil || claims.Scope != models.ScopeRefresh {
		app.invalidAuthorization(w, r, errors.New("invalid refresh token"))
		return
	}

	device, err := app.UserRepo.GetDeviceByFingerprint(claims.UserID, claims.DeviceFingerprint)
	if err != nil || time.Now().After(device.Expiry) {
		app.invalidAuthorization(w, r, errors.New("device not registered"))
		return
	}

	user, err := app.UserRepo.Get(claims.UserID)
	if err != nil {
		app.invalidAuthorization(w, r, err)
		return
	}

	if err := app.setTokenCookie(w, user, claims.DeviceFingerprint, models.ScopeAuthentication); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.JWTRefreshResponse{
		Expiry:  time.Now().Add(time.Second * time.Duration(app.Config.JwtAccessDuration)),
		Refresh: "ok",
	})
}

// setTokenCookie signs a token for scope and stores it in its cookie
func (app *Application) setTokenCookie(w http.ResponseWriter, user models.User, fingerprint, scope string) error {
	name := models.JWT.ACCESS_COOKIE_NAME
	expiry := time.Now().Add(time.Second * time.Duration(app.Config.JwtAccessDuration))
	if scope == models.ScopeRefresh {
		name = models.JWT.REFRESH_COOKIE_NAME
		expiry = time.Now().Add(time.Second * time.Duration(app.Config.JwtRefreshDuration))
	}

	token, err := models.SignJWT(models.NewJWTClaims(user, fingerprint, scope, expiry), app.Config.JwtSecret)
	if err != nil {
		return err
	}

	sameSite := http.SameSiteStrictMode
	if app.Config.JwtDomain == "" {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
		Path:     "/",
		Domain:   app.Config.JwtDomain,
		Expires:  expiry,
	})
	return nil
}

// GET /v1/users/me - Get current authenticated user
func (app *Application) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r)
	writeJSON(w, http.StatusOK, user)
}

// PUT /v1/users/me/update - Update current authenticated user
func (app *Application) updateCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		app.requireMethod(w, r, http.MethodPut, ErrPUT)
		return
	}

	currentUser, _ := userFromContext(r)

	updateReq := &models.UserUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(updateReq); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if updateReq.DisplayName != "" {
		currentUser.DisplayName = updateReq.DisplayName
	}
	if updateReq.Email != "" {
		if _, err := mail.ParseAddress(updateReq.Email); err != nil {
			app.badRequest(w, r, errors.New("a valid email is required"))
			return
		}
		currentUser.Email = updateReq.Email
	}

	updatedUser, updateErr := app.UserRepo.Update(currentUser)
	if updateErr != nil {
		app.internalServerError(w, r, updateErr)
		return
	}

	writeJSON(w, http.StatusOK, updatedUser)
}

// POST /v1/admin/history/prune - Delete expired analysis history now (Admin only)
func (app *Application) pruneHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requireMethod(w, r, http.MethodPost, ErrPOST)
		return
	}
	if app.Pruner == nil {
		app.serviceUnavailable(w, r, errors.New("history retention is disabled"))
		return
	}

	deleted, err := app.Pruner.PruneOnce(time.Now())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	log.Printf("Admin prune removed %d analyses", deleted)
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
