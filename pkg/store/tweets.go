package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/chirpnet/chirpd/pkg/models"
)

// DefaultTweetLimit caps the number of tweets returned by ListTweets when
// the caller doesn't ask for a specific limit.
const DefaultTweetLimit = 100

// ============================================
// TWEET OPERATIONS
// ============================================

func (s *GORMStore) ListTweets(ctx context.Context, limit int) ([]*models.Tweet, error) {
	if limit <= 0 {
		limit = DefaultTweetLimit
	}

	var tweets []*models.Tweet
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Likes.User").
		Preload("Attachments").
		Order("id").
		Limit(limit).
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return tweets, nil
}

func (s *GORMStore) GetTweetAuthorID(ctx context.Context, id int64) (int64, error) {
	var tweet models.Tweet
	err := s.db.WithContext(ctx).
		Select("id", "author_id").
		Where("id = ?", id).
		First(&tweet).Error
	if err != nil {
		return 0, convertNotFoundError(err, models.ErrTweetNotFound)
	}
	return tweet.AuthorID, nil
}

func (s *GORMStore) CreateTweet(ctx context.Context, tweet *models.Tweet, mediaIDs []int64) error {
	if err := tweet.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tweet).Error; err != nil {
			return err
		}

		for _, mediaID := range mediaIDs {
			link := &models.TweetMedia{TweetID: tweet.ID, MediaID: mediaID}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *GORMStore) DeleteTweet(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tweet models.Tweet
		if err := tx.Where("id = ?", id).First(&tweet).Error; err != nil {
			return convertNotFoundError(err, models.ErrTweetNotFound)
		}

		if err := tx.Where("tweet_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", id).Delete(&models.TweetMedia{}).Error; err != nil {
			return err
		}

		return tx.Delete(&tweet).Error
	})
}
