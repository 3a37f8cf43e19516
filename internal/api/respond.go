package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Detail: msg})
}

// writeError maps domain errors to HTTP statuses. Unrecognized errors become
// an opaque 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var (
		ve *domain.ValidationError
		pe *domain.ProviderError
		ce *domain.ConfigurationError
	)
	switch {
	case errors.As(err, &ve):
		writeErrorMessage(w, http.StatusUnprocessableEntity, ve.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorMessage(w, http.StatusUnauthorized, "invalid or missing credentials")
	case errors.As(err, &ce):
		writeErrorMessage(w, http.StatusServiceUnavailable, ce.Error())
	case errors.As(err, &pe):
		writeErrorMessage(w, http.StatusBadGateway, pe.Error())
	default:
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
