//go:build integration

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/chirpnet/chirpd/pkg/models"
)

// createTestStore creates an in-memory SQLite store for testing.
func createTestStore(t *testing.T) *GORMStore {
	t.Helper()
	store, err := New(&Config{
		Type: DatabaseTypeSQLite,
		SQLite: SQLiteConfig{
			Path: ":memory:",
		},
	})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

// createTestUser creates a user with a token and returns it.
func createTestUser(t *testing.T, store *GORMStore, name, apiKey string) *models.User {
	t.Helper()
	user := &models.User{Name: name}
	if err := store.CreateUser(context.Background(), user, apiKey); err != nil {
		t.Fatalf("failed to create user %q: %v", name, err)
	}
	return user
}

func TestNew(t *testing.T) {
	t.Run("default config uses sqlite", func(t *testing.T) {
		config := &Config{}
		config.ApplyDefaults()

		if config.Type != DatabaseTypeSQLite {
			t.Errorf("expected SQLite, got %s", config.Type)
		}
	})

	t.Run("invalid config returns error", func(t *testing.T) {
		config := &Config{
			Type: "invalid",
		}
		_, err := New(config)
		if err == nil {
			t.Error("expected error for invalid config")
		}
	})

	t.Run("creates in-memory store", func(t *testing.T) {
		store := createTestStore(t)
		defer store.Close()

		if err := store.Ping(context.Background()); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})
}

func TestUserOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("create user with token", func(t *testing.T) {
		user := createTestUser(t, store, "alice", "alice-key")

		if user.ID == 0 {
			t.Error("expected generated ID on created user")
		}
		if user.Followers != "{}" || user.Following != "{}" {
			t.Errorf("expected empty edge maps, got %q / %q", user.Followers, user.Following)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		user := &models.User{Name: "alice"}
		err := store.CreateUser(ctx, user, "other-key")
		if !errors.Is(err, models.ErrDuplicateUser) {
			t.Errorf("expected ErrDuplicateUser, got %v", err)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		created := createTestUser(t, store, "bob", "bob-key")

		user, err := store.GetUserByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		if user.Name != "bob" {
			t.Errorf("Name = %q, want %q", user.Name, "bob")
		}
	})

	t.Run("get by id not found", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, 9999)
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("get by api key", func(t *testing.T) {
		user, err := store.GetUserByAPIKey(ctx, "alice-key")
		if err != nil {
			t.Fatalf("GetUserByAPIKey() error = %v", err)
		}
		if user.Name != "alice" {
			t.Errorf("Name = %q, want %q", user.Name, "alice")
		}
	})

	t.Run("get by unknown api key", func(t *testing.T) {
		_, err := store.GetUserByAPIKey(ctx, "no-such-key")
		if !errors.Is(err, models.ErrTokenNotFound) {
			t.Errorf("expected ErrTokenNotFound, got %v", err)
		}
	})

	t.Run("list users ordered by id", func(t *testing.T) {
		users, err := store.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("expected 2 users, got %d", len(users))
		}
		if users[0].Name != "alice" || users[1].Name != "bob" {
			t.Errorf("unexpected order: %q, %q", users[0].Name, users[1].Name)
		}
	})

	t.Run("update edges", func(t *testing.T) {
		alice, err := store.GetUserByAPIKey(ctx, "alice-key")
		if err != nil {
			t.Fatalf("GetUserByAPIKey() error = %v", err)
		}
		bob, err := store.GetUserByAPIKey(ctx, "bob-key")
		if err != nil {
			t.Fatalf("GetUserByAPIKey() error = %v", err)
		}

		// bob follows alice
		if err := alice.SetFollowers(map[string]string{bob.EdgeKey(): bob.Name}); err != nil {
			t.Fatalf("SetFollowers() error = %v", err)
		}
		if err := bob.SetFollowing(map[string]string{alice.EdgeKey(): alice.Name}); err != nil {
			t.Fatalf("SetFollowing() error = %v", err)
		}
		if err := store.UpdateUserEdges(ctx, alice, bob); err != nil {
			t.Fatalf("UpdateUserEdges() error = %v", err)
		}

		reloaded, err := store.GetUserByID(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		followers, err := reloaded.GetFollowers()
		if err != nil {
			t.Fatalf("GetFollowers() error = %v", err)
		}
		if followers[bob.EdgeKey()] != "bob" {
			t.Errorf("followers = %v, expected bob edge", followers)
		}

		reloaded, err = store.GetUserByID(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		following, err := reloaded.GetFollowing()
		if err != nil {
			t.Fatalf("GetFollowing() error = %v", err)
		}
		if following[alice.EdgeKey()] != "alice" {
			t.Errorf("following = %v, expected alice edge", following)
		}
	})

	t.Run("update edges for missing user", func(t *testing.T) {
		ghost := &models.User{ID: 9999, Followers: "{}", Following: "{}"}
		err := store.UpdateUserEdges(ctx, ghost)
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("delete user cascades", func(t *testing.T) {
		alice, err := store.GetUserByAPIKey(ctx, "alice-key")
		if err != nil {
			t.Fatalf("GetUserByAPIKey() error = %v", err)
		}
		bob, err := store.GetUserByAPIKey(ctx, "bob-key")
		if err != nil {
			t.Fatalf("GetUserByAPIKey() error = %v", err)
		}

		// bob authors a tweet that alice likes
		tweet := &models.Tweet{Content: "bye", AuthorID: bob.ID}
		if err := store.CreateTweet(ctx, tweet, nil); err != nil {
			t.Fatalf("CreateTweet() error = %v", err)
		}
		if err := store.AddLike(ctx, alice.ID, tweet.ID); err != nil {
			t.Fatalf("AddLike() error = %v", err)
		}

		if err := store.DeleteUser(ctx, bob.ID); err != nil {
			t.Fatalf("DeleteUser() error = %v", err)
		}

		if _, err := store.GetUserByID(ctx, bob.ID); !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound after delete, got %v", err)
		}
		if _, err := store.GetUserByAPIKey(ctx, "bob-key"); !errors.Is(err, models.ErrTokenNotFound) {
			t.Errorf("expected token to be removed, got %v", err)
		}
		if ok, _ := store.TweetExists(ctx, tweet.ID); ok {
			t.Error("expected authored tweet to be removed")
		}
		if ok, _ := store.LikeExists(ctx, alice.ID, tweet.ID); ok {
			t.Error("expected likes on authored tweets to be removed")
		}

		// bob must be gone from alice's follower map
		reloaded, err := store.GetUserByID(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		followers, err := reloaded.GetFollowers()
		if err != nil {
			t.Fatalf("GetFollowers() error = %v", err)
		}
		if _, ok := followers[bob.EdgeKey()]; ok {
			t.Errorf("followers = %v, expected bob edge scrubbed", followers)
		}
	})

	t.Run("delete missing user", func(t *testing.T) {
		err := store.DeleteUser(ctx, 9999)
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestTweetOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	author := createTestUser(t, store, "author", "author-key")
	liker := createTestUser(t, store, "liker", "liker-key")

	media := []*models.Media{{Name: "a.png"}, {Name: "b.png"}}
	if err := store.CreateMedia(ctx, media); err != nil {
		t.Fatalf("CreateMedia() error = %v", err)
	}

	var tweetID int64

	t.Run("create tweet with attachments", func(t *testing.T) {
		tweet := &models.Tweet{Content: "hello world", AuthorID: author.ID}
		err := store.CreateTweet(ctx, tweet, []int64{media[0].ID, media[1].ID})
		if err != nil {
			t.Fatalf("CreateTweet() error = %v", err)
		}
		if tweet.ID == 0 {
			t.Fatal("expected generated ID on created tweet")
		}
		tweetID = tweet.ID
	})

	t.Run("list tweets with preloads", func(t *testing.T) {
		if err := store.AddLike(ctx, liker.ID, tweetID); err != nil {
			t.Fatalf("AddLike() error = %v", err)
		}

		tweets, err := store.ListTweets(ctx, 0)
		if err != nil {
			t.Fatalf("ListTweets() error = %v", err)
		}
		if len(tweets) != 1 {
			t.Fatalf("expected 1 tweet, got %d", len(tweets))
		}

		tweet := tweets[0]
		if tweet.Author.Name != "author" {
			t.Errorf("Author.Name = %q, want %q", tweet.Author.Name, "author")
		}
		if len(tweet.Likes) != 1 {
			t.Fatalf("expected 1 like, got %d", len(tweet.Likes))
		}
		if tweet.Likes[0].User.Name != "liker" {
			t.Errorf("Likes[0].User.Name = %q, want %q", tweet.Likes[0].User.Name, "liker")
		}
		if len(tweet.Attachments) != 2 {
			t.Fatalf("expected 2 attachments, got %d", len(tweet.Attachments))
		}
		attached := map[int64]bool{}
		for _, link := range tweet.Attachments {
			if link.ID == 0 {
				t.Error("expected link row ID on attachment")
			}
			attached[link.MediaID] = true
		}
		if !attached[media[0].ID] || !attached[media[1].ID] {
			t.Errorf("attachments reference %v, want both media ids", attached)
		}
	})

	t.Run("list respects limit and order", func(t *testing.T) {
		for _, content := range []string{"second", "third"} {
			tweet := &models.Tweet{Content: content, AuthorID: author.ID}
			if err := store.CreateTweet(ctx, tweet, nil); err != nil {
				t.Fatalf("CreateTweet() error = %v", err)
			}
		}

		tweets, err := store.ListTweets(ctx, 2)
		if err != nil {
			t.Fatalf("ListTweets() error = %v", err)
		}
		if len(tweets) != 2 {
			t.Fatalf("expected 2 tweets, got %d", len(tweets))
		}
		if tweets[0].ID >= tweets[1].ID {
			t.Errorf("expected ascending ids, got %d then %d", tweets[0].ID, tweets[1].ID)
		}
		if tweets[0].ID != tweetID {
			t.Errorf("expected the oldest tweet first, got %d", tweets[0].ID)
		}
	})

	t.Run("get author id", func(t *testing.T) {
		authorID, err := store.GetTweetAuthorID(ctx, tweetID)
		if err != nil {
			t.Fatalf("GetTweetAuthorID() error = %v", err)
		}
		if authorID != author.ID {
			t.Errorf("author id = %d, want %d", authorID, author.ID)
		}
	})

	t.Run("get author id not found", func(t *testing.T) {
		_, err := store.GetTweetAuthorID(ctx, 9999)
		if !errors.Is(err, models.ErrTweetNotFound) {
			t.Errorf("expected ErrTweetNotFound, got %v", err)
		}
	})

	t.Run("delete tweet cascades", func(t *testing.T) {
		if err := store.DeleteTweet(ctx, tweetID); err != nil {
			t.Fatalf("DeleteTweet() error = %v", err)
		}

		if ok, _ := store.TweetExists(ctx, tweetID); ok {
			t.Error("expected tweet to be removed")
		}
		if ok, _ := store.LikeExists(ctx, liker.ID, tweetID); ok {
			t.Error("expected likes to be removed")
		}

		var links []*models.TweetMedia
		if err := store.DB().Where("tweet_id = ?", tweetID).Find(&links).Error; err != nil {
			t.Fatalf("failed to query links: %v", err)
		}
		if len(links) != 0 {
			t.Errorf("expected attachment links removed, found %d", len(links))
		}
	})

	t.Run("delete missing tweet", func(t *testing.T) {
		err := store.DeleteTweet(ctx, 9999)
		if !errors.Is(err, models.ErrTweetNotFound) {
			t.Errorf("expected ErrTweetNotFound, got %v", err)
		}
	})
}

func TestLikeOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	user := createTestUser(t, store, "user", "user-key")
	tweet := &models.Tweet{Content: "likeable", AuthorID: user.ID}
	if err := store.CreateTweet(ctx, tweet, nil); err != nil {
		t.Fatalf("CreateTweet() error = %v", err)
	}

	t.Run("tweet exists", func(t *testing.T) {
		ok, err := store.TweetExists(ctx, tweet.ID)
		if err != nil {
			t.Fatalf("TweetExists() error = %v", err)
		}
		if !ok {
			t.Error("expected tweet to exist")
		}

		ok, err = store.TweetExists(ctx, 9999)
		if err != nil {
			t.Fatalf("TweetExists() error = %v", err)
		}
		if ok {
			t.Error("expected tweet to not exist")
		}
	})

	t.Run("add and check like", func(t *testing.T) {
		ok, err := store.LikeExists(ctx, user.ID, tweet.ID)
		if err != nil {
			t.Fatalf("LikeExists() error = %v", err)
		}
		if ok {
			t.Error("expected no like before AddLike")
		}

		if err := store.AddLike(ctx, user.ID, tweet.ID); err != nil {
			t.Fatalf("AddLike() error = %v", err)
		}

		ok, err = store.LikeExists(ctx, user.ID, tweet.ID)
		if err != nil {
			t.Fatalf("LikeExists() error = %v", err)
		}
		if !ok {
			t.Error("expected like after AddLike")
		}
	})

	t.Run("duplicate like", func(t *testing.T) {
		err := store.AddLike(ctx, user.ID, tweet.ID)
		if !errors.Is(err, models.ErrDuplicateLike) {
			t.Errorf("expected ErrDuplicateLike, got %v", err)
		}
	})

	t.Run("delete like", func(t *testing.T) {
		removed, err := store.DeleteLike(ctx, user.ID, tweet.ID)
		if err != nil {
			t.Fatalf("DeleteLike() error = %v", err)
		}
		if !removed {
			t.Error("expected DeleteLike to report removal")
		}

		removed, err = store.DeleteLike(ctx, user.ID, tweet.ID)
		if err != nil {
			t.Fatalf("DeleteLike() error = %v", err)
		}
		if removed {
			t.Error("expected second DeleteLike to report nothing removed")
		}
	})
}

func TestMediaOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("create batch backfills ids", func(t *testing.T) {
		media := []*models.Media{{Name: "one.png"}, {Name: "two.png"}, {Name: "three.png"}}
		if err := store.CreateMedia(ctx, media); err != nil {
			t.Fatalf("CreateMedia() error = %v", err)
		}
		seen := map[int64]bool{}
		for _, m := range media {
			if m.ID == 0 {
				t.Error("expected generated ID on created media")
			}
			if seen[m.ID] {
				t.Errorf("duplicate generated ID %d", m.ID)
			}
			seen[m.ID] = true
		}
	})

	t.Run("create empty batch is a no-op", func(t *testing.T) {
		if err := store.CreateMedia(ctx, nil); err != nil {
			t.Errorf("CreateMedia(nil) error = %v", err)
		}
	})

	t.Run("create invalid media", func(t *testing.T) {
		err := store.CreateMedia(ctx, []*models.Media{{}})
		if err == nil {
			t.Error("expected error for media without name")
		}
	})

	t.Run("update files", func(t *testing.T) {
		media, err := store.GetMediaByIDs(ctx, []int64{1, 2})
		if err != nil {
			t.Fatalf("GetMediaByIDs() error = %v", err)
		}
		if len(media) != 2 {
			t.Fatalf("expected 2 media, got %d", len(media))
		}

		media[0].File = "/srv/media/1/one.png"
		media[1].File = "/srv/media/2/two.png"
		if err := store.UpdateMediaFiles(ctx, media); err != nil {
			t.Fatalf("UpdateMediaFiles() error = %v", err)
		}

		reloaded, err := store.GetMediaByIDs(ctx, []int64{1, 2})
		if err != nil {
			t.Fatalf("GetMediaByIDs() error = %v", err)
		}
		if reloaded[0].File != "/srv/media/1/one.png" || reloaded[1].File != "/srv/media/2/two.png" {
			t.Errorf("files = %q, %q", reloaded[0].File, reloaded[1].File)
		}
		if !reloaded[0].HasFile() {
			t.Error("expected HasFile() after update")
		}
	})

	t.Run("update files for missing media", func(t *testing.T) {
		err := store.UpdateMediaFiles(ctx, []*models.Media{{ID: 9999, File: "ghost"}})
		if !errors.Is(err, models.ErrMediaNotFound) {
			t.Errorf("expected ErrMediaNotFound, got %v", err)
		}
	})

	t.Run("get by ids skips missing", func(t *testing.T) {
		media, err := store.GetMediaByIDs(ctx, []int64{2, 9999, 1})
		if err != nil {
			t.Fatalf("GetMediaByIDs() error = %v", err)
		}
		if len(media) != 2 {
			t.Fatalf("expected 2 media, got %d", len(media))
		}
		if media[0].ID != 1 || media[1].ID != 2 {
			t.Errorf("expected ids ordered ascending, got %d, %d", media[0].ID, media[1].ID)
		}
	})

	t.Run("get by empty ids", func(t *testing.T) {
		media, err := store.GetMediaByIDs(ctx, nil)
		if err != nil {
			t.Fatalf("GetMediaByIDs() error = %v", err)
		}
		if len(media) != 0 {
			t.Errorf("expected no media, got %d", len(media))
		}
	})
}
