// shared/api/response.go
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// JSONErrorResponse defines the structure of every API error body.
type JSONErrorResponse struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

const internalErrorDetail = "An unexpected error occurred."

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response with the given status code, title and detail.
func WriteError(w http.ResponseWriter, status int, title, detail string) {
	errResp := JSONErrorResponse{
		Status: status,
		Title:  title,
		Detail: detail,
	}
	// Attempt to write JSON, fall back to plain text if JSON encoding fails
	if err := WriteJSON(w, status, errResp); err != nil {
		log.Printf("ERROR: Failed to write JSON error response: %v. Falling back to plain text.", err)
		http.Error(w, detail, status)
	}
}

// WriteAPIError is the single place where failures become HTTP responses. Typed errors keep
// their status, title and detail; anything else is logged and reported as a bare 500.
func WriteAPIError(w http.ResponseWriter, logger *log.Logger, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		WriteError(w, apiErr.Status(), apiErr.Title, apiErr.Detail)
		return
	}
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("ERROR: unhandled request failure: %v", err)
	WriteInternalServerError(w)
}

// WriteBadRequest convenience function
func WriteBadRequest(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusBadRequest, http.StatusText(http.StatusBadRequest), detail)
}

// WriteNotFound convenience function
func WriteNotFound(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), detail)
}

// WriteInternalServerError writes the generic 500 body; internals never leave the process.
func WriteInternalServerError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), internalErrorDetail)
}
