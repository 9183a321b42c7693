// Package response renders the JSON envelope every endpoint speaks:
// {"status": ..., "message": ..., "data": ..., "errors": ...} with empty
// fields omitted.
package response

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func send(w http.ResponseWriter, e envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	json.NewEncoder(w).Encode(e) //nolint:errcheck
}

// Success sends a 200 with data.
func Success(w http.ResponseWriter, data interface{}) {
	send(w, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 with data.
func Created(w http.ResponseWriter, data interface{}) {
	send(w, envelope{Status: http.StatusCreated, Data: data})
}

// Error sends an error response with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	send(w, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 carrying a field-to-problem map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	send(w, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) { Error(w, http.StatusUnauthorized, "Unauthorized") }

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) { Error(w, http.StatusForbidden, "Forbidden") }

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) { Error(w, http.StatusNotFound, "Not found") }

// Pagination describes the slice of a collection returned by a listing
// endpoint.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination computes page metadata for a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// Paginated sends a 200 whose data holds the items plus pagination metadata.
func Paginated(w http.ResponseWriter, items interface{}, p Pagination) {
	send(w, envelope{Status: http.StatusOK, Data: map[string]interface{}{
		"items":      items,
		"pagination": p,
	}})
}
