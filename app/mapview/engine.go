package mapview

import (
	"github.com/paulmach/orb"
)

// Engine is the map-rendering engine a session draws on.
type Engine interface {
	Center() (orb.Point, bool)
	SetCenter(center orb.Point)
	AddMarker(opts MarkerOptions) Marker
	AddInfoWindow(content string) InfoWindow
	AddPolyline(opts PolylineOptions) Polyline
}

type MarkerOptions struct {
	Position orb.Point
	Title    string
}

type Marker interface {
	Position() orb.Point
	OnClick(handler func())
	// Click fires the registered click handlers.
	Click()
}

type InfoWindow interface {
	Open(anchor Marker)
	Close()
	IsOpen() bool
	// OnReady registers a handler fired each time the window content is
	// attached to the page.
	OnReady(handler func())
	// Redisplay re-attaches the content, firing the ready handlers again.
	Redisplay()
	SetVisible(visible bool)
}

type PolylineOptions struct {
	Path          orb.LineString
	StrokeColor   string
	StrokeOpacity float64
	StrokeWeight  int
}

type Polyline interface {
	Path() orb.LineString
}

// Document is the page hosting the map.
type Document interface {
	ElementByID(id string) (Element, bool)
}

type Element interface {
	ID() string
	ParentWidth() int
	Hide()
	// InsertAfter adds a sibling element with the given id and size.
	InsertAfter(id string, size Size) Element
}

// EngineFactory creates an engine rendering into el.
type EngineFactory interface {
	NewEngine(el Element, opts MapOptions) Engine
}

// Location exposes the fragment of the page URL, including the leading '#'.
type Location interface {
	Hash() string
}

// HashNotifier is implemented by locations that announce fragment changes.
type HashNotifier interface {
	HashChanges() <-chan struct{}
}
