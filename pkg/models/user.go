package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// MaxUserNameLength is the maximum length of a user name in characters.
const MaxUserNameLength = 200

// User is an account that publishes tweets, likes them and follows other
// users. Follower and following edges are denormalized into JSON objects
// mapping user id to user name, so rendering a profile needs no joins.
type User struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex;not null;size:200" json:"name"`
	Followers string `gorm:"type:text" json:"-"` // JSON blob {"<user-id>": "<user-name>"}
	Following string `gorm:"type:text" json:"-"` // JSON blob {"<user-id>": "<user-name>"}

	// Parsed edges (not stored in DB)
	ParsedFollowers map[string]string `gorm:"-" json:"followers,omitempty"`
	ParsedFollowing map[string]string `gorm:"-" json:"following,omitempty"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// GetFollowers returns the parsed follower edges.
func (u *User) GetFollowers() (map[string]string, error) {
	if u.ParsedFollowers != nil {
		return u.ParsedFollowers, nil
	}
	if u.Followers == "" {
		return make(map[string]string), nil
	}
	var edges map[string]string
	if err := json.Unmarshal([]byte(u.Followers), &edges); err != nil {
		return nil, err
	}
	u.ParsedFollowers = edges
	return edges, nil
}

// SetFollowers sets the follower edges from a map.
func (u *User) SetFollowers(edges map[string]string) error {
	data, err := json.Marshal(edges)
	if err != nil {
		return err
	}
	u.Followers = string(data)
	u.ParsedFollowers = edges
	return nil
}

// GetFollowing returns the parsed following edges.
func (u *User) GetFollowing() (map[string]string, error) {
	if u.ParsedFollowing != nil {
		return u.ParsedFollowing, nil
	}
	if u.Following == "" {
		return make(map[string]string), nil
	}
	var edges map[string]string
	if err := json.Unmarshal([]byte(u.Following), &edges); err != nil {
		return nil, err
	}
	u.ParsedFollowing = edges
	return edges, nil
}

// SetFollowing sets the following edges from a map.
func (u *User) SetFollowing(edges map[string]string) error {
	data, err := json.Marshal(edges)
	if err != nil {
		return err
	}
	u.Following = string(data)
	u.ParsedFollowing = edges
	return nil
}

// EdgeKey returns the JSON object key under which this user appears in
// another user's follower or following map.
func (u *User) EdgeKey() string {
	return strconv.FormatInt(u.ID, 10)
}

// Validate checks that the user fields are valid.
func (u *User) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("user name is required")
	}
	if utf8.RuneCountInString(u.Name) > MaxUserNameLength {
		return fmt.Errorf("user name exceeds %d characters", MaxUserNameLength)
	}
	return nil
}
