package models

import "fmt"

// MaxAPIKeyLength is the maximum length of an API key in characters.
const MaxAPIKeyLength = 200

// Token is an API key bound to a user. Every authenticated request
// carries one in the api-key header and resolves to its owner.
type Token struct {
	ID     int64  `gorm:"primaryKey" json:"id"`
	APIKey string `gorm:"column:api_key;uniqueIndex;not null;size:200" json:"api_key"`
	UserID int64  `gorm:"not null;index" json:"user_id"`

	// Owning user (not serialized)
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for Token.
func (Token) TableName() string {
	return "tokens"
}

// Validate checks that the token fields are valid.
func (t *Token) Validate() error {
	if t.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if len(t.APIKey) > MaxAPIKeyLength {
		return fmt.Errorf("api key exceeds %d characters", MaxAPIKeyLength)
	}
	if t.UserID == 0 {
		return fmt.Errorf("token user id is required")
	}
	return nil
}
