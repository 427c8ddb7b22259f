//go:build integration

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/chirpnet/chirpd/pkg/api/middleware"
	"github.com/chirpnet/chirpd/pkg/models"
	"github.com/chirpnet/chirpd/pkg/store"
)

func setupUserTest(t *testing.T) (*store.GORMStore, *UserHandler) {
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

	return db, NewUserHandler(db)
}

// createTestUser creates a user with a token and returns it.
func createTestUser(t *testing.T, db *store.GORMStore, name, apiKey string) *models.User {
	t.Helper()
	user := &models.User{Name: name}
	if err := db.CreateUser(context.Background(), user, apiKey); err != nil {
		t.Fatalf("Failed to create user %q: %v", name, err)
	}
	return user
}

// decodeError unmarshals the error envelope written by a handler.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) middleware.ErrorResponse {
	t.Helper()
	var resp middleware.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal error response: %v, body = %s", err, w.Body.String())
	}
	return resp
}

func TestUserHandler_Get(t *testing.T) {
	db, handler := setupUserTest(t)
	user := createTestUser(t, db, "getuser", "getuser-key")

	tests := []struct {
		name        string
		id          string
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "existing user",
			id:         "1",
			wantStatus: http.StatusOK,
		},
		{
			name:        "non-existent user",
			id:          "9999",
			wantStatus:  http.StatusNotFound,
			wantMessage: "User with ID `9999` not found",
		},
		{
			name:       "non-numeric id",
			id:         "abc",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "zero id",
			id:         "0",
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/"+tt.id, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.Get(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Get() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var resp UserProfileResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("Failed to unmarshal response: %v", err)
				}
				if !resp.Result {
					t.Error("expected result true")
				}
				if resp.User.ID != user.ID || resp.User.Name != "getuser" {
					t.Errorf("Get() user = %+v, want id %d name getuser", resp.User, user.ID)
				}
				if resp.User.Followers == nil || resp.User.Following == nil {
					t.Error("expected empty edge lists, not null")
				}
			}

			if tt.wantMessage != "" {
				if resp := decodeError(t, w); resp.ErrorMessage != tt.wantMessage {
					t.Errorf("error_message = %q, want %q", resp.ErrorMessage, tt.wantMessage)
				}
			}
		})
	}
}

func TestUserHandler_Me(t *testing.T) {
	db, handler := setupUserTest(t)
	user := createTestUser(t, db, "me", "me-key")

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), user))

		w := httptest.NewRecorder()
		handler.Me(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Me() status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
		}

		var resp UserProfileResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if resp.User.Name != "me" {
			t.Errorf("Me() name = %q, want %q", resp.User.Name, "me")
		}
	})

	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		w := httptest.NewRecorder()

		handler.Me(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Me() status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestUserHandler_Follow(t *testing.T) {
	db, handler := setupUserTest(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", "alice-key")
	bob := createTestUser(t, db, "bob", "bob-key")

	follow := func(t *testing.T, user *models.User, targetID string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/api/users/"+targetID+"/follow", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), user))

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", targetID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		w := httptest.NewRecorder()
		handler.Follow(w, req)
		return w
	}

	t.Run("follow a user", func(t *testing.T) {
		w := follow(t, alice, "2")

		if w.Code != http.StatusCreated {
			t.Fatalf("Follow() status = %d, want %d, body = %s", w.Code, http.StatusCreated, w.Body.String())
		}

		// Both edge maps must be persisted.
		freshBob, err := db.GetUserByID(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		followers, err := freshBob.GetFollowers()
		if err != nil {
			t.Fatalf("GetFollowers() error = %v", err)
		}
		if followers[alice.EdgeKey()] != "alice" {
			t.Errorf("bob followers = %v, want alice under key %s", followers, alice.EdgeKey())
		}

		freshAlice, err := db.GetUserByID(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		following, err := freshAlice.GetFollowing()
		if err != nil {
			t.Fatalf("GetFollowing() error = %v", err)
		}
		if following[bob.EdgeKey()] != "bob" {
			t.Errorf("alice following = %v, want bob under key %s", following, bob.EdgeKey())
		}
	})

	t.Run("follow twice", func(t *testing.T) {
		w := follow(t, alice, "2")

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Follow() status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if resp := decodeError(t, w); resp.ErrorMessage != "You already followed user with user_id `2`" {
			t.Errorf("error_message = %q", resp.ErrorMessage)
		}
	})

	t.Run("follow yourself", func(t *testing.T) {
		w := follow(t, alice, "1")

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Follow() status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if resp := decodeError(t, w); resp.ErrorMessage != "It's your user ID `1`" {
			t.Errorf("error_message = %q", resp.ErrorMessage)
		}
	})

	t.Run("follow missing user", func(t *testing.T) {
		w := follow(t, alice, "42")

		if w.Code != http.StatusNotFound {
			t.Fatalf("Follow() status = %d, want %d", w.Code, http.StatusNotFound)
		}
		if resp := decodeError(t, w); resp.ErrorMessage != "User with ID `42` not found" {
			t.Errorf("error_message = %q", resp.ErrorMessage)
		}
	})

	t.Run("profile renders both edges", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/2", nil)

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", "2")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		w := httptest.NewRecorder()
		handler.Get(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Get() status = %d, body = %s", w.Code, w.Body.String())
		}

		var resp UserProfileResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(resp.User.Followers) != 1 || resp.User.Followers[0].ID != alice.ID || resp.User.Followers[0].Name != "alice" {
			t.Errorf("followers = %+v, want [alice]", resp.User.Followers)
		}
	})
}

func TestUserHandler_Unfollow(t *testing.T) {
	db, handler := setupUserTest(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", "alice-key")
	bob := createTestUser(t, db, "bob", "bob-key")

	unfollow := func(t *testing.T, user *models.User, targetID string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+targetID+"/follow", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), user))

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", targetID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		w := httptest.NewRecorder()
		handler.Unfollow(w, req)
		return w
	}

	t.Run("unfollow without following", func(t *testing.T) {
		w := unfollow(t, alice, "2")

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Unfollow() status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if resp := decodeError(t, w); resp.ErrorMessage != "You are not followed user with user_id `2`" {
			t.Errorf("error_message = %q", resp.ErrorMessage)
		}
	})

	t.Run("unfollow removes both edges", func(t *testing.T) {
		// Establish the follow through the store directly.
		if err := alice.SetFollowing(map[string]string{bob.EdgeKey(): "bob"}); err != nil {
			t.Fatalf("SetFollowing() error = %v", err)
		}
		if err := bob.SetFollowers(map[string]string{alice.EdgeKey(): "alice"}); err != nil {
			t.Fatalf("SetFollowers() error = %v", err)
		}
		if err := db.UpdateUserEdges(ctx, alice, bob); err != nil {
			t.Fatalf("UpdateUserEdges() error = %v", err)
		}

		w := unfollow(t, alice, "2")

		if w.Code != http.StatusOK {
			t.Fatalf("Unfollow() status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
		}

		freshBob, err := db.GetUserByID(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		followers, err := freshBob.GetFollowers()
		if err != nil {
			t.Fatalf("GetFollowers() error = %v", err)
		}
		if len(followers) != 0 {
			t.Errorf("bob followers = %v, want empty", followers)
		}
	})

	t.Run("unfollow yourself", func(t *testing.T) {
		w := unfollow(t, alice, "1")

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Unfollow() status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if resp := decodeError(t, w); resp.ErrorMessage != "It's your user ID `1`" {
			t.Errorf("error_message = %q", resp.ErrorMessage)
		}
	})
}
