// Package feed previews the blog's public RSS feed. Published posts
// appear there without authentication, so the preview confirms
// end-to-end that content written through the proxy is publicly
// visible.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Item is one public feed entry.
type Item struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
}

// Fetcher fetches and parses the site's public feed.
type Fetcher struct {
	client  *http.Client
	parser  *gofeed.Parser
	feedURL string
}

// New creates a fetcher for the WordPress site at siteURL.
func New(siteURL string) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		parser:  gofeed.NewParser(),
		feedURL: strings.TrimRight(siteURL, "/") + "/feed/",
	}
}

// FeedURL returns the derived public feed URL.
func (f *Fetcher) FeedURL() string {
	return f.feedURL
}

// Fetch returns the feed title and its entries, newest first as the
// feed orders them.
func (f *Fetcher) Fetch(ctx context.Context) (string, []Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("User-Agent", "pressdesk/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("feed status %d", resp.StatusCode)
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		published := time.Time{}
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC()
		} else if entry.UpdatedParsed != nil {
			published = entry.UpdatedParsed.UTC()
		}

		link := entry.Link
		if link == "" && len(entry.Links) > 0 {
			link = entry.Links[0]
		}

		items = append(items, Item{
			Title:     entry.Title,
			Link:      link,
			Published: published,
		})
	}

	return parsed.Title, items, nil
}
