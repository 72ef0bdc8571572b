package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `{
  "data": {
    "children": [
      {"data": {"id": "t1", "title": "Pinned rules post", "selftext": "read me", "author": "mod", "score": 999, "created_utc": 1700000000, "stickied": true, "is_video": false}},
      {"data": {"id": "t2", "title": "Demo video", "selftext": "", "author": "vid", "score": 5, "created_utc": 1700000001, "stickied": false, "is_video": true}},
      {"data": {"id": "t3", "title": "Why is this app so expensive?", "selftext": "[removed]", "author": "alice", "score": 42, "created_utc": 1700000002, "stickied": false, "is_video": false}},
      {"data": {"id": "t4", "title": "Support never answers", "selftext": "Waited three days for a reply.", "author": "bob", "score": 17, "created_utc": 1700000003, "stickied": false, "is_video": false}}
    ]
  }
}`

func TestFetchFiltersAndSubstitutesBody(t *testing.T) {
	var gotPath, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, sampleListing)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "complain-finder/1.0")
	posts, err := c.Fetch(context.Background(), "golang", nil, 25)
	require.NoError(t, err)

	assert.Equal(t, "/r/golang/hot.json?limit=25", gotPath)
	assert.Equal(t, "complain-finder/1.0", gotAgent)

	// Stickied and video entries are dropped.
	require.Len(t, posts, 2)

	assert.Equal(t, "t3", posts[0].ID)
	assert.Equal(t, "golang", posts[0].Source)
	// "[removed]" body is replaced by the title.
	assert.Equal(t, "Why is this app so expensive?", posts[0].Body)
	assert.Equal(t, "alice", posts[0].Author)
	assert.Equal(t, 42, posts[0].Score)
	assert.Equal(t, int64(1700000002), posts[0].CreatedAt.Unix())

	assert.Equal(t, "t4", posts[1].ID)
	assert.Equal(t, "Waited three days for a reply.", posts[1].Body)
}

func TestFetchFallsBackToMockOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	posts, err := c.Fetch(context.Background(), "AppIdeas", nil, 5)
	require.NoError(t, err, "fetch must never surface a transport failure")
	assert.Len(t, posts, 5)
	for _, p := range posts {
		assert.True(t, strings.HasPrefix(p.ID, "mock_"))
		assert.Equal(t, "AppIdeas", p.Source)
	}
}

func TestFetchFallsBackToMockOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>rate limited</html>")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	posts, err := c.Fetch(context.Background(), "startups", nil, 3)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestFetchMockModeSkipsEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("mock mode must not hit the endpoint, got %s", r.URL)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	c.MockMode = true

	posts, err := c.Fetch(context.Background(), "AppIdeas", nil, 4)
	require.NoError(t, err)
	require.Len(t, posts, 4)
	for _, p := range posts {
		assert.True(t, strings.HasPrefix(p.ID, "mock_"))
	}
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	c := NewClient("", "agent")
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	require.NotNil(t, c.HTTPClient)
}

func TestMockPosts(t *testing.T) {
	posts := MockPosts("golang", 100)
	// Capped by the template bank.
	require.Len(t, posts, len(mockBodies))

	seen := make(map[string]bool)
	for i, p := range posts {
		assert.False(t, seen[p.ID], "mock ids must be unique within a call")
		seen[p.ID] = true
		assert.Equal(t, "golang", p.Source)
		assert.NotContains(t, p.Title, "%s", "title placeholders must be filled in")
		assert.Equal(t, mockBodies[i], p.Body)
		assert.GreaterOrEqual(t, p.Score, 10)
		assert.Less(t, p.Score, 510)
		assert.False(t, p.CreatedAt.IsZero())
	}
}

func TestMockPostsRespectsLimit(t *testing.T) {
	assert.Len(t, MockPosts("golang", 4), 4)
	assert.Len(t, MockPosts("golang", 0), 0)
}
