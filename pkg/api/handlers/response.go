// Package handlers provides the HTTP handlers for the chirpd API.
package handlers

import (
	"net/http"
	"time"

	"github.com/chirpnet/chirpd/pkg/api/middleware"
)

// ResultResponse is the bare success envelope returned by operations that
// create or remove a relation rather than a resource.
type ResultResponse struct {
	Result bool `json:"result"`
}

// BadRequest writes a 400 APIException envelope response.
func BadRequest(w http.ResponseWriter, detail string) {
	middleware.WriteError(w, http.StatusBadRequest, middleware.TypeAPIException, detail)
}

// Unauthorized writes a 401 AuthenticationError envelope response.
func Unauthorized(w http.ResponseWriter, detail string) {
	middleware.WriteError(w, http.StatusUnauthorized, middleware.TypeAuthenticationError, detail)
}

// Forbidden writes a 403 AuthenticationError envelope response.
func Forbidden(w http.ResponseWriter, detail string) {
	middleware.WriteError(w, http.StatusForbidden, middleware.TypeAuthenticationError, detail)
}

// NotFound writes a 404 NotFoundError envelope response.
func NotFound(w http.ResponseWriter, detail string) {
	middleware.WriteError(w, http.StatusNotFound, middleware.TypeNotFoundError, detail)
}

// UnprocessableEntity writes a 422 ValidationError envelope response.
func UnprocessableEntity(w http.ResponseWriter, detail string) {
	middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.TypeValidationError, detail)
}

// InternalServerError writes a 500 APIException envelope response.
func InternalServerError(w http.ResponseWriter, detail string) {
	middleware.WriteError(w, http.StatusInternalServerError, middleware.TypeAPIException, detail)
}

// WriteJSONOK writes a 200 OK JSON response.
func WriteJSONOK(w http.ResponseWriter, data any) {
	middleware.WriteJSON(w, http.StatusOK, data)
}

// WriteJSONCreated writes a 201 Created JSON response.
func WriteJSONCreated(w http.ResponseWriter, data any) {
	middleware.WriteJSON(w, http.StatusCreated, data)
}

// NotFoundHandler answers requests for routes that don't exist.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, http.StatusNotFound, middleware.TypeNotFoundError, "Not Found")
}

// MethodNotAllowedHandler answers requests with an unsupported method on a
// known route.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, http.StatusMethodNotAllowed, middleware.TypeAPIException, "Method Not Allowed")
}

// Response is the envelope used by the health endpoints.
//
//   - Status indicates the overall result ("healthy", "unhealthy")
//   - Timestamp provides response time for debugging and caching
//   - Data contains the probe payload (optional)
//   - Error contains error details when Status indicates failure (optional)
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// healthyResponse creates a successful health check response.
func healthyResponse(data any) Response {
	return Response{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// unhealthyResponse creates a failed health check response with an error message.
func unhealthyResponse(errMsg string) Response {
	return Response{
		Status:    "unhealthy",
		Timestamp: time.Now().UTC(),
		Error:     errMsg,
	}
}
