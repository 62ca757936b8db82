package canvas

import (
	"strings"
	"sync"

	"github.com/lysyi3m/tumblr-postmap/app/mapview"
)

var (
	_ mapview.Location     = (*Location)(nil)
	_ mapview.HashNotifier = (*Location)(nil)
)

// Location holds the page fragment. It is written from outside the session
// loop, so unlike the rest of the canvas it is locked.
type Location struct {
	mu      sync.RWMutex
	hash    string
	changes chan struct{}
}

func NewLocation(hash string) *Location {
	return &Location{
		hash:    normalizeHash(hash),
		changes: make(chan struct{}, 1),
	}
}

func (l *Location) Hash() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hash
}

// SetHash navigates to a new fragment and announces the change.
func (l *Location) SetHash(hash string) {
	l.mu.Lock()
	l.hash = normalizeHash(hash)
	l.mu.Unlock()

	select {
	case l.changes <- struct{}{}:
	default:
		// a change is already pending
	}
}

func (l *Location) HashChanges() <-chan struct{} {
	return l.changes
}

func normalizeHash(hash string) string {
	hash = strings.TrimSpace(hash)
	if hash == "" || hash == "#" {
		return ""
	}
	if !strings.HasPrefix(hash, "#") {
		return "#" + hash
	}
	return hash
}
