package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		UnprocessableEntity(w, "Invalid request body")
		return false
	}
	return true
}

// parseID extracts a positive integer path parameter.
// Returns false after writing a 422 response when the value is missing,
// non-numeric or not positive.
func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		UnprocessableEntity(w, fmt.Sprintf("Invalid path parameter `%s`", raw))
		return 0, false
	}

	return id, true
}
