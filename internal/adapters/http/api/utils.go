package api

import (
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/vlaboard/internal/adapters/repository"
	"github.com/okian/vlaboard/internal/domain/category"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeStoreError translates repository errors to HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
	case errors.Is(err, repository.ErrUnknownBenchmark):
		writeError(w, http.StatusNotFound, "unknown_benchmark", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, category.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "bad_category", err)
	case errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_limit", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
