// Package store provides the microblog persistence layer.
//
// This package implements the Store interface for managing users, tokens,
// tweets, likes and media records.
//
// Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL (HA-capable)
package store

import (
	"context"

	"github.com/chirpnet/chirpd/pkg/models"
)

// Store provides the microblog persistence interface.
//
// Thread Safety: Implementations must be safe for concurrent use from
// multiple goroutines. The media write worker updates rows while request
// handlers read them.
type Store interface {
	// ============================================
	// USER OPERATIONS
	// ============================================

	// GetUserByID returns a user by their unique ID.
	// Returns models.ErrUserNotFound if no user has this ID.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// GetUserByAPIKey resolves an API key to its owning user.
	// Returns models.ErrTokenNotFound if the key is unknown.
	GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error)

	// ListUsers returns all users ordered by ID.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateUser creates a user together with an API token for it, in a
	// single transaction. The generated user ID is set on the model.
	// Returns models.ErrDuplicateUser if the name is already taken.
	CreateUser(ctx context.Context, user *models.User, apiKey string) error

	// UpdateUserEdges persists the follower and following columns of the
	// given users in a single transaction.
	// Returns models.ErrUserNotFound if any user row is missing.
	UpdateUserEdges(ctx context.Context, users ...*models.User) error

	// DeleteUser removes a user together with their tokens, likes and
	// tweets, and scrubs them from other users' edge maps.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	DeleteUser(ctx context.Context, id int64) error

	// ============================================
	// TWEET OPERATIONS
	// ============================================

	// ListTweets returns tweets ordered by ID with author, likes (and
	// liking users) and attachment links preloaded. A limit <= 0 falls
	// back to DefaultTweetLimit.
	ListTweets(ctx context.Context, limit int) ([]*models.Tweet, error)

	// GetTweetAuthorID returns the author of a tweet.
	// Returns models.ErrTweetNotFound if the tweet doesn't exist.
	GetTweetAuthorID(ctx context.Context, id int64) (int64, error)

	// CreateTweet creates a tweet and its media attachment links in a
	// single transaction. The generated tweet ID is set on the model.
	CreateTweet(ctx context.Context, tweet *models.Tweet, mediaIDs []int64) error

	// DeleteTweet removes a tweet together with its likes and attachment
	// links. Returns models.ErrTweetNotFound if the tweet doesn't exist.
	DeleteTweet(ctx context.Context, id int64) error

	// ============================================
	// LIKE OPERATIONS
	// ============================================

	// TweetExists reports whether a tweet with the given ID exists.
	TweetExists(ctx context.Context, tweetID int64) (bool, error)

	// LikeExists reports whether the user already liked the tweet.
	LikeExists(ctx context.Context, userID, tweetID int64) (bool, error)

	// AddLike records that the user liked the tweet.
	// Returns models.ErrDuplicateLike on a second like.
	AddLike(ctx context.Context, userID, tweetID int64) error

	// DeleteLike removes the user's like from the tweet and reports
	// whether a row was actually removed.
	DeleteLike(ctx context.Context, userID, tweetID int64) (bool, error)

	// ============================================
	// MEDIA OPERATIONS
	// ============================================

	// CreateMedia inserts media records in one batch. Generated IDs are
	// set on the models.
	CreateMedia(ctx context.Context, media []*models.Media) error

	// UpdateMediaFiles persists the File column of the given records in a
	// single transaction. Returns models.ErrMediaNotFound if a row is
	// missing.
	UpdateMediaFiles(ctx context.Context, media []*models.Media) error

	// GetMediaByIDs returns the media records with the given IDs, ordered
	// by ID. Missing IDs are skipped, not an error.
	GetMediaByIDs(ctx context.Context, ids []int64) ([]*models.Media, error)

	// ============================================
	// HEALTH & LIFECYCLE
	// ============================================

	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error

	// Close releases the underlying database connection.
	Close() error
}
