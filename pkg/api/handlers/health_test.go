//go:build integration

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chirpnet/chirpd/pkg/media"
	blobmemory "github.com/chirpnet/chirpd/pkg/media/store/memory"
	"github.com/chirpnet/chirpd/pkg/store"
)

func setupHealthTest(t *testing.T) (*store.GORMStore, *media.Pipeline, *HealthHandler) {
	t.Helper()

	db, err := store.New(&store.Config{
		Type: store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{
			Path: ":memory:",
		},
	})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	pipeline := media.NewPipeline(blobmemory.New("mem://media"), nil, media.DefaultPipelineConfig())
	pipeline.Start()
	t.Cleanup(pipeline.Stop)

	return db, pipeline, NewHealthHandler(db, pipeline)
}

func TestHealthHandler_Liveness(t *testing.T) {
	_, _, handler := setupHealthTest(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.Liveness(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Liveness() status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want %q", resp.Status, "healthy")
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("ready while serving", func(t *testing.T) {
		_, _, handler := setupHealthTest(t)

		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		w := httptest.NewRecorder()

		handler.Readiness(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Readiness() status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
		}

		var resp Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if resp.Status != "healthy" {
			t.Errorf("status = %q, want %q", resp.Status, "healthy")
		}
	})

	t.Run("unready once the pipeline stopped", func(t *testing.T) {
		_, pipeline, handler := setupHealthTest(t)
		pipeline.Stop()

		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		w := httptest.NewRecorder()

		handler.Readiness(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("Readiness() status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}

		var resp Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if resp.Status != "unhealthy" {
			t.Errorf("status = %q, want %q", resp.Status, "unhealthy")
		}
		if resp.Error != "media pipeline stopped" {
			t.Errorf("error = %q, want %q", resp.Error, "media pipeline stopped")
		}
	})

	t.Run("unready when the database is gone", func(t *testing.T) {
		db, _, handler := setupHealthTest(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		w := httptest.NewRecorder()

		handler.Readiness(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("Readiness() status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})
}
