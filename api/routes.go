package api

import (
	"net/http"
	"regexp"
	"strings"
)

var localhostPattern = regexp.MustCompile(`^localhost:\d+$`)

func cleanOrigin(origin string) string {
	cleanedOrigin := strings.TrimPrefix(origin, "https://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "http://")
	if idx := strings.Index(cleanedOrigin, "/"); idx != -1 {
		cleanedOrigin = cleanedOrigin[:idx]
	}
	return cleanedOrigin
}

func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	cleanedRequest := cleanOrigin(origin)

	// Allow localhost for development
	if localhostPattern.MatchString(cleanedRequest) {
		return true
	}

	for _, allowed := range allowedOrigins {
		if cleanOrigin(strings.TrimSpace(allowed)) == cleanedRequest {
			return true
		}
	}

	return false
}

func wrapMuxWithCorsAndOrigins(mux *http.ServeMux, app *Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = r.Header.Get("Referer")
		}

		if origin == "" || app.Config.DevMode || isAllowedOrigin(origin, app.Config.AllowedOrigins) {
			handleCors(mux.ServeHTTP)(w, r)
			return
		}

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("origin not allowed: " + cleanOrigin(origin)))
	})
}

func (app *Application) BuildRoutes(mux *http.ServeMux) *http.ServeMux {
	finalMux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("/", app.home)
	mux.HandleFunc("/health", app.health)
	mux.HandleFunc("/v1/analyze", app.optionalUser(app.analyze))
	mux.HandleFunc("/v1/analyze/debug", app.analyzeDebug)
	mux.HandleFunc("/v1/brands", app.getBrands)
	mux.HandleFunc("/v1/products", app.getProducts)
	mux.HandleFunc("/v1/auth/signup", app.requireDatabase(app.signup))
	mux.HandleFunc("/v1/auth/login", app.requireDatabase(app.login))
	mux.HandleFunc("/v1/auth/refresh", app.requireDatabase(app.refresh))

	// Authenticated endpoints
	mux.HandleFunc("/v1/users/me", app.requireDatabase(app.authenticate(app.getCurrentUser)))
	mux.HandleFunc("/v1/users/me/update", app.requireDatabase(app.authenticate(app.updateCurrentUser)))
	mux.HandleFunc("/v1/users/me/history", app.requireDatabase(app.authenticate(app.getHistory)))
	mux.HandleFunc("/v1/users/me/latest", app.requireDatabase(app.authenticate(app.getLatestAnalysis)))
	mux.HandleFunc("/v1/users/me/favorites", app.requireDatabase(app.authenticate(app.favorites)))
	mux.HandleFunc("/v1/users/me/favorites/{productID}", app.requireDatabase(app.authenticate(app.removeFavorite)))

	// Admin endpoints
	mux.HandleFunc("/v1/admin/history/prune", app.requireDatabase(app.verifyPermissions(app.pruneHistory)))

	// Wrap entire mux with CORS and origins check
	finalMux.Handle("/", wrapMuxWithCorsAndOrigins(mux, app))

	return finalMux
}
