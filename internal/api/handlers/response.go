package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/campusbay/backend/internal/assets"
	"github.com/campusbay/backend/internal/domain"
	"github.com/campusbay/backend/internal/service"
)

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("ERROR [handlers] encoding response: %v", err)
		}
	}
}

func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps service and asset failures onto the HTTP taxonomy.
// Anything unrecognized is a 500 with a generic message; the detail is logged,
// never surfaced.
func serviceError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":  validation.Error(),
			"fields": validation.Fields,
		})
	case errors.Is(err, service.ErrNotInstitutional),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, assets.ErrUnsupportedMedia),
		errors.Is(err, assets.ErrTooLarge):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		jsonError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		jsonError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrUserNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("ERROR [handlers] internal error: %v", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
	}
}
