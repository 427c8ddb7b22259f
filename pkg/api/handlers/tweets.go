package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/chirpnet/chirpd/pkg/api/middleware"
	"github.com/chirpnet/chirpd/pkg/models"
	"github.com/chirpnet/chirpd/pkg/store"
)

// TweetHandler handles the tweet feed, publishing and like endpoints.
type TweetHandler struct {
	store store.Store
}

// NewTweetHandler creates a new TweetHandler.
func NewTweetHandler(s store.Store) *TweetHandler {
	return &TweetHandler{store: s}
}

// TweetFeedResponse is the response body for GET /api/tweets.
type TweetFeedResponse struct {
	Result bool        `json:"result"`
	Tweets []TweetView `json:"tweets"`
}

// TweetView renders one tweet in the feed. Attachments are the ids of the
// tweet's media links.
type TweetView struct {
	ID          int64      `json:"id"`
	Content     string     `json:"content"`
	Attachments []int64    `json:"attachments"`
	Author      AuthorView `json:"author"`
	Likes       []LikeView `json:"likes"`
}

// AuthorView identifies the tweet author.
type AuthorView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LikeView identifies one user who liked a tweet.
type LikeView struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// CreateTweetRequest is the request body for POST /api/tweets.
type CreateTweetRequest struct {
	TweetData     string  `json:"tweet_data"`
	TweetMediaIDs []int64 `json:"tweet_media_ids"`
}

// CreateTweetResponse is the response body for POST /api/tweets.
type CreateTweetResponse struct {
	Result  bool  `json:"result"`
	TweetID int64 `json:"tweet_id"`
}

// List handles GET /api/tweets.
// Returns the tweet feed with authors, likes and attachments resolved.
func (h *TweetHandler) List(w http.ResponseWriter, r *http.Request) {
	tweets, err := h.store.ListTweets(r.Context(), 0)
	if err != nil {
		InternalServerError(w, "Failed to list tweets")
		return
	}

	views := make([]TweetView, len(tweets))
	for i, tweet := range tweets {
		views[i] = tweetToView(tweet)
	}

	WriteJSONOK(w, TweetFeedResponse{Result: true, Tweets: views})
}

// Create handles POST /api/tweets.
// Publishes a tweet for the authenticated user and links the referenced
// media. Unknown media ids are dropped, not rejected.
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	var req CreateTweetRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	tweet := &models.Tweet{Content: req.TweetData, AuthorID: user.ID}
	if err := tweet.Validate(); err != nil {
		UnprocessableEntity(w, err.Error())
		return
	}

	mediaIDs := req.TweetMediaIDs
	if len(mediaIDs) > 0 {
		media, err := h.store.GetMediaByIDs(r.Context(), mediaIDs)
		if err != nil {
			InternalServerError(w, "Failed to resolve media")
			return
		}

		mediaIDs = make([]int64, len(media))
		for i, record := range media {
			mediaIDs[i] = record.ID
		}
	}

	if err := h.store.CreateTweet(r.Context(), tweet, mediaIDs); err != nil {
		InternalServerError(w, "Failed to create tweet")
		return
	}

	WriteJSONCreated(w, CreateTweetResponse{Result: true, TweetID: tweet.ID})
}

// Delete handles DELETE /api/tweets/{id}.
// Removes a tweet. Only the author may delete their own tweets.
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	authorID, err := h.store.GetTweetAuthorID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrTweetNotFound) {
			NotFound(w, fmt.Sprintf("Tweet with id `%d` not found", id))
			return
		}
		InternalServerError(w, "Failed to get tweet")
		return
	}

	if authorID != user.ID {
		Forbidden(w, "Wrong owner")
		return
	}

	if err := h.store.DeleteTweet(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrTweetNotFound) {
			NotFound(w, fmt.Sprintf("Tweet with id `%d` not found", id))
			return
		}
		InternalServerError(w, "Failed to delete tweet")
		return
	}

	WriteJSONOK(w, ResultResponse{Result: true})
}

// Like handles POST /api/tweets/{id}/likes.
// Records that the authenticated user liked the tweet.
func (h *TweetHandler) Like(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	exists, err := h.store.TweetExists(r.Context(), id)
	if err != nil {
		InternalServerError(w, "Failed to get tweet")
		return
	}
	if !exists {
		NotFound(w, fmt.Sprintf("Tweet with id `%d` not found", id))
		return
	}

	if err := h.store.AddLike(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, models.ErrDuplicateLike) {
			BadRequest(w, "Tweet already liked")
			return
		}
		InternalServerError(w, "Failed to like tweet")
		return
	}

	WriteJSONCreated(w, ResultResponse{Result: true})
}

// Unlike handles DELETE /api/tweets/{id}/likes.
// Removes the authenticated user's like from the tweet.
func (h *TweetHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	exists, err := h.store.TweetExists(r.Context(), id)
	if err != nil {
		InternalServerError(w, "Failed to get tweet")
		return
	}
	if !exists {
		NotFound(w, fmt.Sprintf("Tweet with id `%d` not found", id))
		return
	}

	removed, err := h.store.DeleteLike(r.Context(), user.ID, id)
	if err != nil {
		InternalServerError(w, "Failed to unlike tweet")
		return
	}
	if !removed {
		BadRequest(w, "This tweet not liked")
		return
	}

	WriteJSONOK(w, ResultResponse{Result: true})
}

// tweetToView renders one tweet for the feed.
func tweetToView(tweet *models.Tweet) TweetView {
	attachments := make([]int64, len(tweet.Attachments))
	for i, att := range tweet.Attachments {
		attachments[i] = att.ID
	}

	likes := make([]LikeView, len(tweet.Likes))
	for i, like := range tweet.Likes {
		likes[i] = LikeView{UserID: like.UserID, Name: like.User.Name}
	}

	return TweetView{
		ID:          tweet.ID,
		Content:     tweet.Content,
		Attachments: attachments,
		Author:      AuthorView{ID: tweet.Author.ID, Name: tweet.Author.Name},
		Likes:       likes,
	}
}
