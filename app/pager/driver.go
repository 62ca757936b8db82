package pager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/tumblr-postmap/app/tumblr"
)

// Source returns one page of posts starting at the given offset.
type Source interface {
	FetchPage(ctx context.Context, start int) (*tumblr.Page, error)
}

// PageHandler processes a page before the next one is requested.
type PageHandler func(page *tumblr.Page) error

// Driver walks a paged feed one page at a time.
type Driver struct {
	source Source
}

func NewDriver(source Source) *Driver {
	return &Driver{source: source}
}

// FetchAll requests pages from start until the feed is exhausted and hands
// each one to handle in order. It returns the number of fetches issued.
// A failed fetch stops the walk; there is no retry.
func (d *Driver) FetchAll(ctx context.Context, start int, handle PageHandler) (int, error) {
	fetches := 0
	offset := start

	for {
		select {
		case <-ctx.Done():
			return fetches, ctx.Err()
		default:
		}

		page, err := d.source.FetchPage(ctx, offset)
		fetches++
		if err != nil {
			return fetches, fmt.Errorf("failed to fetch posts at %d: %w", offset, err)
		}

		if err := handle(page); err != nil {
			return fetches, fmt.Errorf("failed to process posts at %d: %w", offset, err)
		}

		next, more := nextOffset(page)
		if !more {
			slog.Debug("Pagination complete", "fetches", fetches, "total", int(page.Total))
			return fetches, nil
		}

		if next <= offset {
			slog.Warn("Feed cursor did not advance, stopping", "offset", offset, "next", next)
			return fetches, nil
		}
		offset = next
	}
}

func nextOffset(page *tumblr.Page) (int, bool) {
	start := int(page.Start)
	count := len(page.Posts)
	total := int(page.Total)

	if count > 0 && start+count < total {
		return start + count, true
	}
	return 0, false
}
