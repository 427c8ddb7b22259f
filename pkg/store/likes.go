package store

import (
	"context"

	"github.com/chirpnet/chirpd/pkg/models"
)

// ============================================
// LIKE OPERATIONS
// ============================================

func (s *GORMStore) TweetExists(ctx context.Context, tweetID int64) (bool, error) {
	return exists[models.Tweet](s.db, ctx, "id = ?", tweetID)
}

func (s *GORMStore) LikeExists(ctx context.Context, userID, tweetID int64) (bool, error) {
	return exists[models.Like](s.db, ctx, "user_id = ? AND tweet_id = ?", userID, tweetID)
}

func (s *GORMStore) AddLike(ctx context.Context, userID, tweetID int64) error {
	like := &models.Like{UserID: userID, TweetID: tweetID}
	if err := like.Validate(); err != nil {
		return err
	}
	return create(s.db, ctx, like, models.ErrDuplicateLike)
}

func (s *GORMStore) DeleteLike(ctx context.Context, userID, tweetID int64) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
