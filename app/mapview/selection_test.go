package mapview

import (
	"context"
	"testing"
	"time"

	"github.com/lysyi3m/tumblr-postmap/app/loop"
	"github.com/lysyi3m/tumblr-postmap/app/tumblr"
)

func newTestSelection(t *testing.T) (*Selector, *MockLocation, *State) {
	t.Helper()

	engine := &MockEngine{}
	state := NewState()
	location := &MockLocation{}
	builder := NewBuilder(engine, location, state)
	builder.ProcessPage(&tumblr.Page{Posts: []tumblr.Post{geoPost("1", 1, 1), geoPost("42", 2, 2), geoPost("3", 3, 3)}})
	builder.Finish()

	return NewSelector(location, state, 10*time.Millisecond), location, state
}

func TestSelector_Check(t *testing.T) {
	selector, location, state := newTestSelection(t)

	if selector.Check() {
		t.Error("Expected no selection for empty fragment")
	}

	location.SetHash("#p42")
	if !selector.Check() {
		t.Fatal("Expected fragment #p42 to select a marker")
	}
	if state.MarkerID != "#p42" {
		t.Errorf("Expected marker id '#p42', got '%s'", state.MarkerID)
	}
	if !state.Markers["#p42"].Info.IsOpen() || state.OpenCount() != 1 {
		t.Error("Expected only #p42 open")
	}

	// user clicks another marker; unchanged fragment must not reselect
	state.Markers["#p3"].Marker.Click()
	if selector.Check() {
		t.Error("Expected unchanged fragment to be a no-op")
	}
	if !state.Markers["#p3"].Info.IsOpen() {
		t.Error("Expected user selection to stay open")
	}
}

func TestSelector_UnknownFragmentRemembered(t *testing.T) {
	selector, location, state := newTestSelection(t)

	location.SetHash("#p777")
	if selector.Check() {
		t.Error("Expected unknown fragment not to select")
	}
	if state.MarkerID != "#p777" {
		t.Errorf("Expected unknown fragment to be remembered, got '%s'", state.MarkerID)
	}
	if !state.Markers["#p1"].Info.IsOpen() {
		t.Error("Expected current selection to be untouched")
	}
}

func TestSelector_SequenceKeepsOneOpen(t *testing.T) {
	selector, location, state := newTestSelection(t)

	for _, hash := range []string{"#p3", "#p1", "#p42", "#pX", "#p3"} {
		location.SetHash(hash)
		selector.Check()
		if state.OpenCount() != 1 {
			t.Fatalf("Expected 1 open info window after %s, got %d", hash, state.OpenCount())
		}
	}
	if !state.Markers["#p3"].Info.IsOpen() {
		t.Error("Expected #p3 open at the end")
	}
}

func TestSelector_WatchPolls(t *testing.T) {
	selector, location, state := newTestSelection(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := loop.New(16)
	go l.Run(ctx)
	go selector.Watch(ctx, l)

	location.SetHash("#p42")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		open := false
		if err := l.Do(ctx, func() { open = state.Markers["#p42"].Info.IsOpen() }); err != nil {
			t.Fatal(err)
		}
		if open {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("Expected polling to select #p42")
}

func TestSelector_WatchNotifications(t *testing.T) {
	engine := &MockEngine{}
	state := NewState()
	location := &MockNotifyingLocation{MockLocation{changes: make(chan struct{}, 1)}}
	builder := NewBuilder(engine, location, state)
	builder.ProcessPage(&tumblr.Page{Posts: []tumblr.Post{geoPost("1", 1, 1), geoPost("2", 2, 2)}})

	// an interval this long never fires during the test
	selector := NewSelector(location, state, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := loop.New(16)
	go l.Run(ctx)
	go selector.Watch(ctx, l)

	location.Navigate("#p2")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		open := false
		l.Do(ctx, func() { open = state.Markers["#p2"].Info.IsOpen() })
		if open {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("Expected notification to select #p2")
}
