package apiclient

import (
	"fmt"
)

// Author identifies the user who published a tweet.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LikeRef identifies a user who liked a tweet.
type LikeRef struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// Tweet is one entry of the feed.
type Tweet struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	Attachments []int64   `json:"attachments"`
	Author      Author    `json:"author"`
	Likes       []LikeRef `json:"likes"`
}

type tweetFeedResponse struct {
	Result bool    `json:"result"`
	Tweets []Tweet `json:"tweets"`
}

// CreateTweetRequest is the request to publish a tweet.
type CreateTweetRequest struct {
	TweetData     string  `json:"tweet_data"`
	TweetMediaIDs []int64 `json:"tweet_media_ids"`
}

type createTweetResponse struct {
	Result  bool  `json:"result"`
	TweetID int64 `json:"tweet_id"`
}

// ListTweets returns the feed.
func (c *Client) ListTweets() ([]Tweet, error) {
	var resp tweetFeedResponse
	if err := c.get("/api/tweets", &resp); err != nil {
		return nil, err
	}
	return resp.Tweets, nil
}

// CreateTweet publishes a tweet and returns its id. mediaIDs may be nil.
func (c *Client) CreateTweet(content string, mediaIDs []int64) (int64, error) {
	req := CreateTweetRequest{
		TweetData:     content,
		TweetMediaIDs: mediaIDs,
	}
	if req.TweetMediaIDs == nil {
		req.TweetMediaIDs = []int64{}
	}

	var resp createTweetResponse
	if err := c.post("/api/tweets", req, &resp); err != nil {
		return 0, err
	}
	return resp.TweetID, nil
}

// DeleteTweet deletes a tweet owned by the key's user.
func (c *Client) DeleteTweet(id int64) error {
	return c.delete(fmt.Sprintf("/api/tweets/%d", id), nil)
}

// LikeTweet likes the tweet with the given id.
func (c *Client) LikeTweet(id int64) error {
	return c.post(fmt.Sprintf("/api/tweets/%d/likes", id), nil, nil)
}

// UnlikeTweet removes the key's user like from the tweet.
func (c *Client) UnlikeTweet(id int64) error {
	return c.delete(fmt.Sprintf("/api/tweets/%d/likes", id), nil)
}
