package models

import "fmt"

// Like records that a user liked a tweet. A user can like a given tweet
// at most once, enforced by the composite unique index.
type Like struct {
	ID      int64 `gorm:"primaryKey" json:"id"`
	UserID  int64 `gorm:"not null;uniqueIndex:idx_likes_user_tweet" json:"user_id"`
	TweetID int64 `gorm:"not null;uniqueIndex:idx_likes_user_tweet" json:"tweet_id"`

	// Liking user (loaded on demand)
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name for Like.
func (Like) TableName() string {
	return "likes"
}

// Validate checks that the like fields are valid.
func (l *Like) Validate() error {
	if l.UserID == 0 {
		return fmt.Errorf("like user id is required")
	}
	if l.TweetID == 0 {
		return fmt.Errorf("like tweet id is required")
	}
	return nil
}
