package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecoverer(t *testing.T) {
	t.Run("recovers panics into the error envelope", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/tweets", nil)
		w := httptest.NewRecorder()

		Recoverer(next).ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
		}

		resp := decodeErrorResponse(t, w)
		if resp.ErrorType != TypeAPIException {
			t.Errorf("error_type = %q, want %q", resp.ErrorType, TypeAPIException)
		}
		if resp.ErrorMessage != "Internal Server Error" {
			t.Errorf("error_message = %q, want %q", resp.ErrorMessage, "Internal Server Error")
		}
	})

	t.Run("passes http.ErrAbortHandler through", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/tweets", nil)
		w := httptest.NewRecorder()

		defer func() {
			if recovered := recover(); recovered != http.ErrAbortHandler {
				t.Errorf("recovered %v, want http.ErrAbortHandler", recovered)
			}
		}()

		Recoverer(next).ServeHTTP(w, req)
		t.Error("expected panic to propagate")
	})

	t.Run("untouched on clean requests", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		Recoverer(next).ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
		}
	})
}
