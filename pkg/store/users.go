package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chirpnet/chirpd/pkg/models"
)

// ============================================
// USER OPERATIONS
// ============================================

func (s *GORMStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "id", id, models.ErrUserNotFound)
}

func (s *GORMStore) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	token, err := getByField[models.Token](s.db, ctx, "api_key", apiKey, models.ErrTokenNotFound, "User")
	if err != nil {
		return nil, err
	}
	return &token.User, nil
}

func (s *GORMStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	return listAll[models.User](s.db, ctx, "id")
}

func (s *GORMStore) CreateUser(ctx context.Context, user *models.User, apiKey string) error {
	if err := user.Validate(); err != nil {
		return err
	}

	// New accounts start with empty edge maps, not NULL columns.
	if user.Followers == "" {
		user.Followers = "{}"
	}
	if user.Following == "" {
		user.Following = "{}"
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := create(tx, ctx, user, models.ErrDuplicateUser); err != nil {
			return err
		}

		token := &models.Token{APIKey: apiKey, UserID: user.ID}
		if err := token.Validate(); err != nil {
			return err
		}
		if err := tx.Create(token).Error; err != nil {
			return fmt.Errorf("failed to create token: %w", err)
		}

		return nil
	})
}

func (s *GORMStore) UpdateUserEdges(ctx context.Context, users ...*models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, user := range users {
			result := tx.Model(&models.User{}).
				Where("id = ?", user.ID).
				Updates(map[string]any{
					"followers": user.Followers,
					"following": user.Following,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return models.ErrUserNotFound
			}
		}
		return nil
	})
}

func (s *GORMStore) DeleteUser(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return convertNotFoundError(err, models.ErrUserNotFound)
		}

		// Rows owned directly by the user
		if err := tx.Where("user_id = ?", id).Delete(&models.Token{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		// Authored tweets, with their likes and attachment links
		var tweetIDs []int64
		if err := tx.Model(&models.Tweet{}).Where("author_id = ?", id).Pluck("id", &tweetIDs).Error; err != nil {
			return err
		}
		if len(tweetIDs) > 0 {
			if err := tx.Where("tweet_id IN ?", tweetIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("tweet_id IN ?", tweetIDs).Delete(&models.TweetMedia{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", id).Delete(&models.Tweet{}).Error; err != nil {
				return err
			}
		}

		// Drop the user from everyone else's edge maps
		if err := scrubUserEdges(tx, &user); err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}

// scrubUserEdges removes the user from every other user's follower and
// following maps so profiles never render deleted accounts.
func scrubUserEdges(tx *gorm.DB, user *models.User) error {
	key := user.EdgeKey()

	var others []*models.User
	if err := tx.Where("id <> ?", user.ID).Find(&others).Error; err != nil {
		return err
	}

	for _, other := range others {
		followers, err := other.GetFollowers()
		if err != nil {
			return err
		}
		following, err := other.GetFollowing()
		if err != nil {
			return err
		}

		_, inFollowers := followers[key]
		_, inFollowing := following[key]
		if !inFollowers && !inFollowing {
			continue
		}

		delete(followers, key)
		delete(following, key)
		if err := other.SetFollowers(followers); err != nil {
			return err
		}
		if err := other.SetFollowing(following); err != nil {
			return err
		}

		result := tx.Model(&models.User{}).
			Where("id = ?", other.ID).
			Updates(map[string]any{
				"followers": other.Followers,
				"following": other.Following,
			})
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}
