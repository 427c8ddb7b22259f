package models

import (
	"fmt"
	"unicode/utf8"
)

// MaxTweetLength is the maximum length of tweet content in characters.
const MaxTweetLength = 10000

// Tweet is a post published by a user, optionally carrying media
// attachments linked through TweetMedia rows.
type Tweet struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"not null;size:10000" json:"content"`
	AuthorID int64  `gorm:"not null;index" json:"author_id"`

	// Associations (loaded on demand)
	Author      User         `gorm:"foreignKey:AuthorID" json:"-"`
	Likes       []Like       `gorm:"foreignKey:TweetID" json:"-"`
	Attachments []TweetMedia `gorm:"foreignKey:TweetID" json:"-"`
}

// TableName returns the table name for Tweet.
func (Tweet) TableName() string {
	return "tweets"
}

// Validate checks that the tweet fields are valid.
func (t *Tweet) Validate() error {
	if t.Content == "" {
		return fmt.Errorf("tweet content is required")
	}
	if utf8.RuneCountInString(t.Content) > MaxTweetLength {
		return fmt.Errorf("tweet content exceeds %d characters", MaxTweetLength)
	}
	if t.AuthorID == 0 {
		return fmt.Errorf("tweet author id is required")
	}
	return nil
}
