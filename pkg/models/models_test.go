package models

import (
	"strings"
	"testing"
)

func TestUser_GetFollowers(t *testing.T) {
	t.Run("empty column", func(t *testing.T) {
		u := User{}
		edges, err := u.GetFollowers()
		if err != nil {
			t.Fatalf("GetFollowers() error = %v", err)
		}
		if len(edges) != 0 {
			t.Errorf("expected empty map, got %d entries", len(edges))
		}
	})

	t.Run("stored JSON", func(t *testing.T) {
		u := User{Followers: `{"2":"bob","3":"carol"}`}
		edges, err := u.GetFollowers()
		if err != nil {
			t.Fatalf("GetFollowers() error = %v", err)
		}
		if len(edges) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(edges))
		}
		if edges["2"] != "bob" {
			t.Errorf("edges[2] = %q, want %q", edges["2"], "bob")
		}
		if edges["3"] != "carol" {
			t.Errorf("edges[3] = %q, want %q", edges["3"], "carol")
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		u := User{Followers: "{not json"}
		if _, err := u.GetFollowers(); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})
}

func TestUser_SetFollowers(t *testing.T) {
	u := User{}
	if err := u.SetFollowers(map[string]string{"7": "dave"}); err != nil {
		t.Fatalf("SetFollowers() error = %v", err)
	}
	if u.Followers != `{"7":"dave"}` {
		t.Errorf("Followers column = %q, want %q", u.Followers, `{"7":"dave"}`)
	}

	edges, err := u.GetFollowers()
	if err != nil {
		t.Fatalf("GetFollowers() error = %v", err)
	}
	if edges["7"] != "dave" {
		t.Errorf("edges[7] = %q, want %q", edges["7"], "dave")
	}
}

func TestUser_FollowingRoundTrip(t *testing.T) {
	u := User{}
	want := map[string]string{"1": "alice", "9": "eve"}
	if err := u.SetFollowing(want); err != nil {
		t.Fatalf("SetFollowing() error = %v", err)
	}

	// Re-parse from the stored column, not the cache.
	fresh := User{Following: u.Following}
	edges, err := fresh.GetFollowing()
	if err != nil {
		t.Fatalf("GetFollowing() error = %v", err)
	}
	if len(edges) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(edges))
	}
	for id, name := range want {
		if edges[id] != name {
			t.Errorf("edges[%s] = %q, want %q", id, edges[id], name)
		}
	}
}

func TestUser_EdgeKey(t *testing.T) {
	u := User{ID: 42}
	if got := u.EdgeKey(); got != "42" {
		t.Errorf("EdgeKey() = %q, want %q", got, "42")
	}
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"valid user", User{Name: "alice"}, false},
		{"missing name", User{}, true},
		{"name at limit", User{Name: strings.Repeat("a", MaxUserNameLength)}, false},
		{"name too long", User{Name: strings.Repeat("a", MaxUserNameLength+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToken_Validate(t *testing.T) {
	tests := []struct {
		name    string
		token   Token
		wantErr bool
	}{
		{"valid token", Token{APIKey: "secret", UserID: 1}, false},
		{"missing key", Token{UserID: 1}, true},
		{"missing user", Token{APIKey: "secret"}, true},
		{"key too long", Token{APIKey: strings.Repeat("k", MaxAPIKeyLength+1), UserID: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.token.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTweet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tweet   Tweet
		wantErr bool
	}{
		{"valid tweet", Tweet{Content: "hello", AuthorID: 1}, false},
		{"missing content", Tweet{AuthorID: 1}, true},
		{"missing author", Tweet{Content: "hello"}, true},
		{"content at limit", Tweet{Content: strings.Repeat("x", MaxTweetLength), AuthorID: 1}, false},
		{"content too long", Tweet{Content: strings.Repeat("x", MaxTweetLength+1), AuthorID: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tweet.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLike_Validate(t *testing.T) {
	tests := []struct {
		name    string
		like    Like
		wantErr bool
	}{
		{"valid like", Like{UserID: 1, TweetID: 2}, false},
		{"missing user", Like{TweetID: 2}, true},
		{"missing tweet", Like{UserID: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.like.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMedia_Validate(t *testing.T) {
	tests := []struct {
		name    string
		media   Media
		wantErr bool
	}{
		{"valid media", Media{Name: "avatar.png"}, false},
		{"missing name", Media{}, true},
		{"hex fallback name", Media{Name: strings.Repeat("ab", 16)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.media.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMedia_HasFile(t *testing.T) {
	m := Media{Name: "avatar.png"}
	if m.HasFile() {
		t.Error("HasFile() = true before any write")
	}
	m.File = "static/images/3/avatar.png"
	if !m.HasFile() {
		t.Error("HasFile() = false after setting path")
	}
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		model interface{ TableName() string }
		want  string
	}{
		{User{}, "users"},
		{Token{}, "tokens"},
		{Tweet{}, "tweets"},
		{Like{}, "likes"},
		{TweetMedia{}, "tweet_media"},
		{Media{}, "media"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.model.TableName(); got != tt.want {
				t.Errorf("TableName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAllModels(t *testing.T) {
	all := AllModels()
	if len(all) != 6 {
		t.Errorf("AllModels() returned %d models, want 6", len(all))
	}
}
