package middleware

import (
	"fmt"
	"net/http"
	"strings"
)

// multipartContentType is the only content type accepted for uploads.
const multipartContentType = "multipart/form-data"

// ValidateUpload is a middleware that vets upload requests before any auth
// or body handling happens:
//
//   - missing Content-Type header: 422 "Missing header `content-type`"
//   - Content-Type other than multipart/form-data: 415
//   - missing or unusable Content-Length: 411
//   - Content-Length above maxSize: 413
//
// All failures use the ValidationError envelope. The check distinguishes a
// missing Content-Type header (422) from one present with a useless value
// (415), which is why it looks at the header values and not just Get.
func ValidateUpload(maxSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Values("Content-Type")) == 0 {
				WriteError(w, http.StatusUnprocessableEntity, TypeValidationError, "Missing header `content-type`")
				return
			}

			contentType := r.Header.Get("Content-Type")
			if !strings.Contains(contentType, multipartContentType) {
				WriteError(w, http.StatusUnsupportedMediaType, TypeValidationError,
					"Unsupported media type: "+contentType)
				return
			}

			// ContentLength is -1 for chunked bodies and 0 when the header
			// is absent; uploads need a declared length either way.
			if r.ContentLength <= 0 {
				WriteError(w, http.StatusLengthRequired, TypeValidationError, "Length required")
				return
			}

			if r.ContentLength > maxSize {
				WriteError(w, http.StatusRequestEntityTooLarge, TypeValidationError,
					fmt.Sprintf("Media more than `%d` bytes", maxSize))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
