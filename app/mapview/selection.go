package mapview

import (
	"context"
	"log/slog"
	"time"
)

const DefaultPollInterval = 300 * time.Millisecond

// Poster schedules work on the session loop.
type Poster interface {
	Post(fn func()) error
}

// Selector keeps the open info window in step with the URL fragment.
type Selector struct {
	location Location
	state    *State
	interval time.Duration
}

func NewSelector(location Location, state *State, interval time.Duration) *Selector {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Selector{
		location: location,
		state:    state,
		interval: interval,
	}
}

// Check applies the current fragment if it changed since the last check.
// It must run on the session loop.
func (s *Selector) Check() bool {
	hash := s.location.Hash()
	if hash == "" || hash == s.state.MarkerID {
		return false
	}

	s.state.MarkerID = hash

	entity, ok := s.state.Markers[hash]
	if !ok {
		slog.Debug("Fragment does not match a marker", "hash", hash)
		return false
	}

	slog.Debug("Selecting marker from fragment", "hash", hash)
	entity.Marker.Click()
	return true
}

// Watch schedules Check on the loop until ctx is done. Locations that
// announce changes are checked on notification, others on a fixed interval.
func (s *Selector) Watch(ctx context.Context, loop Poster) {
	var trigger <-chan struct{}
	if notifier, ok := s.location.(HashNotifier); ok {
		trigger = notifier.HashChanges()
	}

	var ticks <-chan time.Time
	if trigger == nil {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	pending := make(chan struct{}, 1)
	check := func() {
		select {
		case pending <- struct{}{}:
		default:
			// previous check still queued
			return
		}
		err := loop.Post(func() {
			<-pending
			s.Check()
		})
		if err != nil {
			<-pending
			slog.Warn("Failed to schedule fragment check", "error", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			check()
		case _, ok := <-trigger:
			if !ok {
				return
			}
			check()
		}
	}
}
