package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/chirpnet/chirpd/pkg/api/middleware"
	"github.com/chirpnet/chirpd/pkg/models"
	"github.com/chirpnet/chirpd/pkg/store"
)

// UserHandler handles the user profile and follow endpoints.
type UserHandler struct {
	store store.Store
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(s store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// UserProfileResponse is the response body for the profile endpoints.
type UserProfileResponse struct {
	Result bool        `json:"result"`
	User   UserProfile `json:"user"`
}

// UserProfile renders a user together with its follow edges.
type UserProfile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Followers []EdgeRef `json:"followers"`
	Following []EdgeRef `json:"following"`
}

// EdgeRef is one end of a follow edge.
type EdgeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Me handles GET /api/users/me.
// Returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	profile, err := userToProfile(user)
	if err != nil {
		InternalServerError(w, "Failed to load user profile")
		return
	}

	WriteJSONOK(w, UserProfileResponse{Result: true, User: profile})
}

// Get handles GET /api/users/{id}.
// Returns any user's profile. This endpoint is unauthenticated.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, fmt.Sprintf("User with ID `%d` not found", id))
			return
		}
		InternalServerError(w, "Failed to get user")
		return
	}

	profile, err := userToProfile(user)
	if err != nil {
		InternalServerError(w, "Failed to load user profile")
		return
	}

	WriteJSONOK(w, UserProfileResponse{Result: true, User: profile})
}

// Follow handles POST /api/users/{id}/follow.
// Adds the authenticated user as a follower of the target user. Both edge
// maps are updated in one transaction.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if id == user.ID {
		BadRequest(w, fmt.Sprintf("It's your user ID `%d`", id))
		return
	}

	target, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, fmt.Sprintf("User with ID `%d` not found", id))
			return
		}
		InternalServerError(w, "Failed to get user")
		return
	}

	targetFollowers, err := target.GetFollowers()
	if err != nil {
		InternalServerError(w, "Failed to load follow state")
		return
	}

	if _, followed := targetFollowers[user.EdgeKey()]; followed {
		BadRequest(w, fmt.Sprintf("You already followed user with user_id `%d`", id))
		return
	}

	following, err := user.GetFollowing()
	if err != nil {
		InternalServerError(w, "Failed to load follow state")
		return
	}

	following[target.EdgeKey()] = target.Name
	targetFollowers[user.EdgeKey()] = user.Name

	if err := user.SetFollowing(following); err != nil {
		InternalServerError(w, "Failed to update follow state")
		return
	}
	if err := target.SetFollowers(targetFollowers); err != nil {
		InternalServerError(w, "Failed to update follow state")
		return
	}

	if err := h.store.UpdateUserEdges(r.Context(), user, target); err != nil {
		InternalServerError(w, "Failed to update follow state")
		return
	}

	WriteJSONCreated(w, ResultResponse{Result: true})
}

// Unfollow handles DELETE /api/users/{id}/follow.
// Removes the authenticated user from the target user's followers.
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if id == user.ID {
		BadRequest(w, fmt.Sprintf("It's your user ID `%d`", id))
		return
	}

	target, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, fmt.Sprintf("User with ID `%d` not found", id))
			return
		}
		InternalServerError(w, "Failed to get user")
		return
	}

	targetFollowers, err := target.GetFollowers()
	if err != nil {
		InternalServerError(w, "Failed to load follow state")
		return
	}

	if _, followed := targetFollowers[user.EdgeKey()]; !followed {
		BadRequest(w, fmt.Sprintf("You are not followed user with user_id `%d`", id))
		return
	}

	following, err := user.GetFollowing()
	if err != nil {
		InternalServerError(w, "Failed to load follow state")
		return
	}

	delete(targetFollowers, user.EdgeKey())
	delete(following, target.EdgeKey())

	if err := user.SetFollowing(following); err != nil {
		InternalServerError(w, "Failed to update follow state")
		return
	}
	if err := target.SetFollowers(targetFollowers); err != nil {
		InternalServerError(w, "Failed to update follow state")
		return
	}

	if err := h.store.UpdateUserEdges(r.Context(), user, target); err != nil {
		InternalServerError(w, "Failed to update follow state")
		return
	}

	WriteJSONOK(w, ResultResponse{Result: true})
}

// userToProfile renders a user with both edge lists resolved.
func userToProfile(user *models.User) (UserProfile, error) {
	followers, err := user.GetFollowers()
	if err != nil {
		return UserProfile{}, err
	}

	following, err := user.GetFollowing()
	if err != nil {
		return UserProfile{}, err
	}

	followerRefs, err := edgeList(followers)
	if err != nil {
		return UserProfile{}, err
	}

	followingRefs, err := edgeList(following)
	if err != nil {
		return UserProfile{}, err
	}

	return UserProfile{
		ID:        user.ID,
		Name:      user.Name,
		Followers: followerRefs,
		Following: followingRefs,
	}, nil
}

// edgeList converts an edge map to a list ordered by user id.
func edgeList(edges map[string]string) ([]EdgeRef, error) {
	list := make([]EdgeRef, 0, len(edges))

	for rawID, name := range edges {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed edge key %q: %w", rawID, err)
		}
		list = append(list, EdgeRef{ID: id, Name: name})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	return list, nil
}
