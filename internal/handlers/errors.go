package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"smartbiz-backend/internal/repositories"
	"smartbiz-backend/internal/services"
	"smartbiz-backend/pkg/utils"
)

// writeError maps service and store errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *services.ValidationError
		fetchErr      *repositories.FetchError
		writeErr      *repositories.WriteError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.Error(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repositories.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrConflict), errors.Is(err, repositories.ErrDuplicateUser):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrBackupDisabled):
		utils.Error(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &fetchErr), errors.As(err, &writeErr):
		log.Printf("[HTTP] %s %s: %v", r.Method, r.URL.Path, err)
		utils.Error(w, http.StatusBadGateway, "spreadsheet unavailable, try again")
	default:
		log.Printf("[HTTP] %s %s: %v", r.Method, r.URL.Path, err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
