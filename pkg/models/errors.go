package models

import "errors"

// Common errors for microblog store operations.
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")

	// Token errors
	ErrTokenNotFound = errors.New("token not found")

	// Tweet errors
	ErrTweetNotFound = errors.New("tweet not found")

	// Like errors
	ErrLikeNotFound  = errors.New("like not found")
	ErrDuplicateLike = errors.New("like already exists")

	// Media errors
	ErrMediaNotFound = errors.New("media not found")
)
