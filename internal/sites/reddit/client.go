package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/YeongsHub/complain-finder/internal/core/domain"
	"github.com/YeongsHub/complain-finder/internal/core/ports"
)

const DefaultBaseURL = "https://www.reddit.com"

// Client is the adapter for the Reddit public JSON API. It implements
// ports.Source and never fails a fetch: any transport or parse error drops
// the whole call to the deterministic mock generator.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client

	// MockMode skips the live endpoint entirely and serves mock posts.
	MockMode bool
}

func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		UserAgent:  userAgent,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

var _ ports.Source = (*Client)(nil)

// Fetch returns up to limit posts from r/<source>. The keyword filter is
// accepted for interface compatibility; the hot listing cannot be filtered
// server-side, so keywords are not applied here.
func (c *Client) Fetch(ctx context.Context, source string, _ []string, limit int) ([]domain.Post, error) {
	if c.MockMode {
		return MockPosts(source, limit), nil
	}
	posts, err := c.fetchListing(ctx, source, limit)
	if err != nil {
		log.Printf("[reddit] fetch r/%s failed, falling back to mock posts: %v", source, err)
		return MockPosts(source, limit), nil
	}
	return posts, nil
}

func (c *Client) fetchListing(ctx context.Context, source string, limit int) ([]domain.Post, error) {
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", c.BaseURL, source, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing failed with status: %d", resp.StatusCode)
	}

	var data listing
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	var posts []domain.Post
	for _, child := range data.Data.Children {
		p := child.Data
		// Skip pinned and video-only entries.
		if p.Stickied || p.IsVideo {
			continue
		}
		body := p.Selftext
		if body == "" || body == "[removed]" || body == "[deleted]" {
			body = p.Title
		}
		posts = append(posts, domain.Post{
			ID:        p.ID,
			Source:    source,
			Title:     p.Title,
			Body:      body,
			Author:    p.Author,
			Score:     p.Score,
			CreatedAt: time.Unix(int64(p.CreatedUTC), 0),
		})
	}

	log.Printf("[reddit] fetched %d posts from r/%s", len(posts), source)
	return posts, nil
}
