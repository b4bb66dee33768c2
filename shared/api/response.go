// shared/api/response.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// JSONErrorResponse defines a standard structure for API error responses.
type JSONErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response with the given status code and message.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteErrorDetails(w, status, message, "")
}

// WriteErrorDetails is WriteError with an additional details string.
func WriteErrorDetails(w http.ResponseWriter, status int, message, details string) {
	errResp := JSONErrorResponse{
		Message: message,
		Code:    status,
		Details: details,
	}
	if err := WriteJSON(w, status, errResp); err != nil {
		slog.Error("failed to write JSON error response", slog.String("error", err.Error()))
	}
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func WriteInternalServerError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
