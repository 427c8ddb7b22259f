package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTweets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tweets", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("api-key"))

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(tweetFeedResponse{
			Result: true,
			Tweets: []Tweet{
				{
					ID:          1,
					Content:     "hello",
					Attachments: []int64{7},
					Author:      Author{ID: 1, Name: "alice"},
					Likes:       []LikeRef{{UserID: 2, Name: "bob"}},
				},
				{
					ID:          2,
					Content:     "second",
					Attachments: []int64{},
					Author:      Author{ID: 2, Name: "bob"},
					Likes:       []LikeRef{},
				},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL).WithKey("test-key")
	tweets, err := client.ListTweets()

	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, "hello", tweets[0].Content)
	assert.Equal(t, []int64{7}, tweets[0].Attachments)
	assert.Equal(t, "bob", tweets[0].Likes[0].Name)
	assert.Empty(t, tweets[1].Likes)
}

func TestCreateTweet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tweets", r.URL.Path)

		var req CreateTweetRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "what a sunset", req.TweetData)
		assert.Equal(t, []int64{7, 8}, req.TweetMediaIDs)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createTweetResponse{Result: true, TweetID: 5})
	}))
	defer server.Close()

	client := New(server.URL).WithKey("test-key")
	id, err := client.CreateTweet("what a sunset", []int64{7, 8})

	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestCreateTweet_NilMediaIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The wire format wants an array, not null.
		var raw map[string]json.RawMessage
		err := json.NewDecoder(r.Body).Decode(&raw)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(raw["tweet_media_ids"]))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createTweetResponse{Result: true, TweetID: 6})
	}))
	defer server.Close()

	client := New(server.URL).WithKey("test-key")
	id, err := client.CreateTweet("plain text", nil)

	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
}

func TestDeleteTweet_WrongOwner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/tweets/3", r.URL.Path)

		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result":        false,
			"error_type":    "AuthenticationError",
			"error_message": "Wrong owner",
		})
	}))
	defer server.Close()

	client := New(server.URL).WithKey("test-key")
	err := client.DeleteTweet(3)

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsAuthError())
	assert.Equal(t, "Wrong owner", apiErr.Message)
}

func TestLikeTweet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tweets/3/likes", r.URL.Path)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]bool{"result": true})
	}))
	defer server.Close()

	client := New(server.URL).WithKey("test-key")
	err := client.LikeTweet(3)

	require.NoError(t, err)
}

func TestUnlikeTweet_NotLiked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/tweets/3/likes", r.URL.Path)

		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result":        false,
			"error_type":    "APIException",
			"error_message": "This tweet not liked",
		})
	}))
	defer server.Close()

	client := New(server.URL).WithKey("test-key")
	err := client.UnlikeTweet(3)

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "This tweet not liked", apiErr.Message)
}
