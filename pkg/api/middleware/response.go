// Package middleware provides HTTP middleware for the chirpd API and the
// JSON response envelope the API speaks.
//
// Every response carries a "result" flag. Failures add an error type and a
// human-readable message, and repeat the type in the API-Error response
// header so clients can dispatch without parsing the body:
//
//	{"result": false, "error_type": "NotFoundError", "error_message": "..."}
package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/chirpnet/chirpd/internal/logger"
)

// HeaderAPIError is the response header carrying the error type.
const HeaderAPIError = "API-Error"

// Error types used in the envelope and the API-Error header.
const (
	// TypeAPIException covers generic request failures (400), unsupported
	// methods (405) and internal errors (500).
	TypeAPIException = "APIException"

	// TypeAuthenticationError covers missing or invalid credentials (401)
	// and ownership violations (403).
	TypeAuthenticationError = "AuthenticationError"

	// TypeNotFoundError covers missing resources and unmatched routes (404).
	TypeNotFoundError = "NotFoundError"

	// TypeValidationError covers malformed input (422) and the upload
	// validation statuses (411, 413, 415).
	TypeValidationError = "ValidationError"
)

// ErrorResponse is the envelope for failed requests.
type ErrorResponse struct {
	Result       bool   `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

// WriteJSON writes a JSON response with the given status code.
//
// Encoding is done to a buffer first so that an encoding failure can still
// produce an error response before any headers are sent.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
		w.Header().Set(HeaderAPIError, TypeAPIException)
		http.Error(w, `{"result":false,"error_type":"APIException","error_message":"Failed to encode response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// WriteError writes an error envelope with the given status, error type and
// message, and mirrors the type into the API-Error header.
func WriteError(w http.ResponseWriter, status int, errType, message string) {
	w.Header().Set(HeaderAPIError, errType)
	WriteJSON(w, status, ErrorResponse{
		Result:       false,
		ErrorType:    errType,
		ErrorMessage: message,
	})
}
