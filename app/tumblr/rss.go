package tumblr

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
)

// RSSSource reads posts from a blog's RSS feed. The feed is not paged, so
// every item arrives on the first page as a regular post.
type RSSSource struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	feedURL      string
	userAgent    string
}

func NewRSSSource(httpClient *http.Client, baseURL, userAgent string) *RSSSource {
	return &RSSSource{
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		feedURL:      strings.TrimRight(baseURL, "/") + "/rss",
		userAgent:    userAgent,
	}
}

func (s *RSSSource) FetchPage(ctx context.Context, start int) (*Page, error) {
	if start > 0 {
		return &Page{Start: FlexInt(start), Total: FlexInt(start)}, nil
	}

	data, err := fetch(ctx, s.httpClient, s.feedURL, s.userAgent)
	if err != nil {
		return nil, err
	}

	feed, err := s.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	posts := make([]Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		posts = append(posts, itemToPost(item))
	}

	slog.Debug("RSS feed fetched", "url", s.feedURL, "items", len(posts))

	return &Page{Posts: posts, Start: 0, Total: FlexInt(len(posts))}, nil
}

func itemToPost(item *gofeed.Item) Post {
	post := Post{
		ID:           FlexString(PostIDFromLink(cmp.Or(item.Link, item.GUID))),
		Type:         PostTypeRegular,
		URL:          item.Link,
		RegularTitle: item.Title,
		RegularBody:  cmp.Or(item.Description, item.Content),
	}

	if item.PublishedParsed != nil {
		post.UnixTimestamp = item.PublishedParsed.Unix()
	}

	return post
}

// PostIDFromLink extracts the numeric id from a ".../post/<id>/<slug>"
// permalink. Links without that segment are returned unchanged.
func PostIDFromLink(link string) string {
	_, rest, found := strings.Cut(link, "/post/")
	if !found {
		return link
	}

	id, _, _ := strings.Cut(rest, "/")
	return cmp.Or(id, link)
}
