package models

import "fmt"

// MaxMediaNameLength is the length upload filenames are compacted to
// before storage. Generated fallback names (hex ids for nameless parts)
// run longer; SQLite stores them regardless of the column size.
const MaxMediaNameLength = 20

// Media is an uploaded file. A row is created as soon as an upload is
// accepted; File stays empty until the write worker has persisted the
// bytes and recorded the final path.
type Media struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;size:20" json:"name"`
	File string `gorm:"size:200" json:"file,omitempty"`
}

// TableName returns the table name for Media.
func (Media) TableName() string {
	return "media"
}

// HasFile reports whether the media bytes have been persisted.
func (m *Media) HasFile() bool {
	return m.File != ""
}

// Validate checks that the media fields are valid.
func (m *Media) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("media name is required")
	}
	return nil
}

// TweetMedia links a media row to the tweet that embeds it. A tweet can
// attach a given media at most once.
type TweetMedia struct {
	ID      int64 `gorm:"primaryKey" json:"id"`
	TweetID int64 `gorm:"not null;uniqueIndex:idx_tweet_media" json:"tweet_id"`
	MediaID int64 `gorm:"not null;uniqueIndex:idx_tweet_media" json:"media_id"`

	// Attached media (loaded on demand)
	Media Media `gorm:"foreignKey:MediaID" json:"-"`
}

// TableName returns the table name for TweetMedia.
func (TweetMedia) TableName() string {
	return "tweet_media"
}
