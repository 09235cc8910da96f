package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/trueshade/api/colorscience"
	"github.com/trueshade/api/sampler"
)

// Helper function to get caller information
func getCallerInfo() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "[unknown]"
	}
	return fmt.Sprintf("[%s:%d]", filepath.Base(file), line)
}

type HandlerError struct {
	ErrorName        string `json:"errorName"`
	Description      string `json:"description"`
	PossibleSolution string `json:"possibleSolution"`
	CallerInfo       string `json:"callerInfo"`
}

var ErrGET = fmt.Errorf("GET method required for this endpoint")
var ErrPOST = fmt.Errorf("POST method required for this endpoint")
var ErrPUT = fmt.Errorf("PUT method required for this endpoint")
var ErrDELETE = fmt.Errorf("DELETE method required for this endpoint")
var ErrInvalidPrivelege = fmt.Errorf("invalid authentication privileges")
var ErrDatabaseDisabled = fmt.Errorf("database not configured")

func writeHandlerError(w http.ResponseWriter, status int, handlerErr HandlerError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(handlerErr)
}

func (app *Application) invalidCredentials(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusUnauthorized, HandlerError{
		ErrorName:        "Error Authorizing User",
		Description:      err.Error(),
		PossibleSolution: "Retry with proper credentials",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) invalidAuthorization(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusUnauthorized, HandlerError{
		ErrorName:        "Error Authenticating for Endpoint",
		Description:      "Invalid Authentication",
		PossibleSolution: "Check your headers and ensure you're submitting a valid token",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) forbidden(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusForbidden, HandlerError{
		ErrorName:        "Forbidden",
		Description:      err.Error(),
		PossibleSolution: "This endpoint requires an admin account",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) requireMethod(w http.ResponseWriter, r *http.Request, method string, err error) {
	w.Header().Set("Allow", method)
	writeHandlerError(w, http.StatusMethodNotAllowed, HandlerError{
		ErrorName:        method + " Method Required",
		Description:      err.Error() + " you used: " + r.Method,
		PossibleSolution: "Use " + method + " method",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) badJSONRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusBadRequest, HandlerError{
		ErrorName:        "Error Parsing JSON",
		Description:      err.Error(),
		PossibleSolution: "Double check your JSON formatting",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusInternalServerError, HandlerError{
		ErrorName:        "Internal Server Error",
		Description:      err.Error(),
		PossibleSolution: "Internal Server Error requiring support",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) userAlreadyExists(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusConflict, HandlerError{
		ErrorName:        "User Exists",
		Description:      "There is already a user with this email address",
		PossibleSolution: "Advise user to login with their credentials",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusBadRequest, HandlerError{
		ErrorName:        "Bad Request",
		Description:      err.Error(),
		PossibleSolution: "Check your request parameters",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) notFound(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusNotFound, HandlerError{
		ErrorName:        "Not Found",
		Description:      err.Error(),
		PossibleSolution: "Check the identifier in your request",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) serviceUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusServiceUnavailable, HandlerError{
		ErrorName:        "Service Unavailable",
		Description:      err.Error(),
		PossibleSolution: "Configure a database to use this feature",
		CallerInfo:       getCallerInfo(),
	})
}

// analysisError maps pipeline failures to client or server errors
func (app *Application) analysisError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, colorscience.ErrInsufficientSamples):
		writeHandlerError(w, http.StatusUnprocessableEntity, HandlerError{
			ErrorName:        "Insufficient Skin Samples",
			Description:      err.Error(),
			PossibleSolution: "Use a well lit photo with the face clearly visible",
			CallerInfo:       getCallerInfo(),
		})
	case errors.Is(err, colorscience.ErrInvalidColorInput):
		writeHandlerError(w, http.StatusBadRequest, HandlerError{
			ErrorName:        "Invalid Color Input",
			Description:      err.Error(),
			PossibleSolution: "Send pixels as [r, g, b] arrays with values from 0 to 255",
			CallerInfo:       getCallerInfo(),
		})
	case errors.Is(err, sampler.ErrUndecodableImage):
		writeHandlerError(w, http.StatusBadRequest, HandlerError{
			ErrorName:        "Invalid Image",
			Description:      err.Error(),
			PossibleSolution: "Upload a JPEG, PNG, GIF or WebP image",
			CallerInfo:       getCallerInfo(),
		})
	default:
		writeHandlerError(w, http.StatusInternalServerError, HandlerError{
			ErrorName:        "Analysis Failed",
			Description:      err.Error(),
			PossibleSolution: "Internal Server Error requiring support",
			CallerInfo:       getCallerInfo(),
		})
	}
}
