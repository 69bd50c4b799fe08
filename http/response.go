package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/sagarc03/logtable"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	// Written is set when a batch failed part way; that many events were stored.
	Written *int `json:"written,omitempty"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	writeErrorResponse(w, code, ErrorResponse{Error: errCode, Message: message})
}

func writeErrorResponse(w http.ResponseWriter, code int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type
func HandleError(w http.ResponseWriter, err error) {
	slog.Error("request error", "error", err)

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		WriteError(w, http.StatusRequestEntityTooLarge, "too_large", "Request body too large")
		return
	}

	if errors.Is(err, logtable.ErrInvalidInput) {
		WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	if errors.Is(err, ErrUnauthorized) {
		WriteError(w, http.StatusUnauthorized, "unauthorized", err.Error())
		return
	}

	resp := ErrorResponse{Error: "internal_error", Message: "Internal server error"}
	var partial *PartialWriteError
	if errors.As(err, &partial) {
		resp.Written = &partial.Written
	}
	writeErrorResponse(w, http.StatusInternalServerError, resp)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

func writeNotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "not_found", "Route not found")
}
