package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/chirpnet/chirpd/internal/logger"
)

// Recoverer is a middleware that turns handler panics into a 500 error
// envelope instead of a dropped connection.
//
// http.ErrAbortHandler is re-raised so the server's own abort handling
// still applies.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logger.ErrorCtx(r.Context(), "Panic while serving request",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rvr,
				"stack", string(debug.Stack()),
			)
			WriteError(w, http.StatusInternalServerError, TypeAPIException, "Internal Server Error")
		}()

		next.ServeHTTP(w, r)
	})
}
