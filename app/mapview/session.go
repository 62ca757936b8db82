package mapview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/tumblr-postmap/app/loop"
	"github.com/lysyi3m/tumblr-postmap/app/pager"
	"github.com/lysyi3m/tumblr-postmap/app/tumblr"
)

// Plugin attaches post maps to a page.
type Plugin struct {
	Document     Document
	Engines      EngineFactory
	Source       pager.Source
	Location     Location
	Loop         *loop.Loop
	PollInterval time.Duration
}

// Session is one map attached to a page, alive until its context ends.
type Session struct {
	Engine   Engine
	state    *State
	builder  *Builder
	selector *Selector
	loop     *loop.Loop
	done     chan struct{}
	err      error
}

// Attach replaces the container element with a map and starts loading posts
// into it. It reports false, doing nothing, when the container or the
// inserted map element cannot be found.
func (p *Plugin) Attach(ctx context.Context, containerID string, opts Options) (*Session, bool) {
	container, ok := p.Document.ElementByID(containerID)
	if !ok {
		slog.Debug("Map container not found", "id", containerID)
		return nil, false
	}

	size := opts.MapSizeFor(container.ParentWidth())
	container.Hide()
	container.InsertAfter(opts.MapID, size)

	mapEl, ok := p.Document.ElementByID(opts.MapID)
	if !ok {
		slog.Debug("Map element not found", "id", opts.MapID)
		return nil, false
	}

	engine := p.Engines.NewEngine(mapEl, opts.MapOptions)
	state := NewState()

	session := &Session{
		Engine:   engine,
		state:    state,
		builder:  NewBuilder(engine, p.Location, state),
		selector: NewSelector(p.Location, state, p.PollInterval),
		loop:     p.Loop,
		done:     make(chan struct{}),
	}

	slog.Info("Map attached", "container", containerID, "map_id", opts.MapID,
		"width", size.Width, "height", size.Height, "zoom", opts.MapOptions.Zoom)

	go session.run(ctx, pager.NewDriver(p.Source))

	return session, true
}

func (s *Session) run(ctx context.Context, driver *pager.Driver) {
	fetches, err := driver.FetchAll(ctx, 0, func(page *tumblr.Page) error {
		return s.loop.Do(ctx, func() {
			s.builder.ProcessPage(page)
		})
	})
	if err != nil {
		// the page chain stalls here: no track, no fragment polling
		slog.Error("Loading posts failed", "fetches", fetches, "error", err)
		s.err = err
		close(s.done)
		return
	}

	if err := s.loop.Do(ctx, s.builder.Finish); err != nil {
		s.err = fmt.Errorf("failed to finish map: %w", err)
		close(s.done)
		return
	}
	close(s.done)

	s.selector.Watch(ctx, s.loop)
}

// Wait blocks until loading has finished. It returns the error that
// stopped loading, if any.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loaded reports whether loading has finished, and the error that stopped
// it, without blocking.
func (s *Session) Loaded() (bool, error) {
	select {
	case <-s.done:
		return true, s.err
	default:
		return false, nil
	}
}

// Click triggers the marker registered under key, as a user click would.
// It must run on the session loop.
func (s *Session) Click(key string) bool {
	entity, ok := s.state.Markers[key]
	if !ok {
		return false
	}
	entity.Marker.Click()
	return true
}

// Keys lists entity keys in arrival order. It must run on the session loop.
func (s *Session) Keys() []string {
	keys := make([]string, 0, len(s.state.Entities))
	for _, entity := range s.state.Entities {
		keys = append(keys, entity.Key)
	}
	return keys
}

// State exposes the session state. It must only be used on the session loop.
func (s *Session) State() *State {
	return s.state
}
