package apiclient

import (
	"fmt"
)

// EdgeRef identifies one side of a follow relationship.
type EdgeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserProfile is a user with their follow edges.
type UserProfile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Followers []EdgeRef `json:"followers"`
	Following []EdgeRef `json:"following"`
}

type userProfileResponse struct {
	Result bool        `json:"result"`
	User   UserProfile `json:"user"`
}

// Me returns the profile of the user owning the api-key.
func (c *Client) Me() (*UserProfile, error) {
	var resp userProfileResponse
	if err := c.get("/api/users/me", &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// GetUser returns a user profile by id. No api-key is required.
func (c *Client) GetUser(id int64) (*UserProfile, error) {
	var resp userProfileResponse
	if err := c.get(fmt.Sprintf("/api/users/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// FollowUser follows the user with the given id.
func (c *Client) FollowUser(id int64) error {
	return c.post(fmt.Sprintf("/api/users/%d/follow", id), nil, nil)
}

// UnfollowUser unfollows the user with the given id.
func (c *Client) UnfollowUser(id int64) error {
	return c.delete(fmt.Sprintf("/api/users/%d/follow", id), nil)
}
