package mapview

import (
	"context"
	"fmt"
	"sync"

	"github.com/paulmach/orb"

	"github.com/lysyi3m/tumblr-postmap/app/tumblr"
)

// MockEngine records everything drawn on it.
type MockEngine struct {
	center    *orb.Point
	markers   []*MockMarker
	infos     []*MockInfoWindow
	polylines []*MockPolyline
	options   MapOptions
}

func (m *MockEngine) Center() (orb.Point, bool) {
	if m.center == nil {
		return orb.Point{}, false
	}
	return *m.center, true
}

func (m *MockEngine) SetCenter(center orb.Point) {
	m.center = &center
}

func (m *MockEngine) AddMarker(opts MarkerOptions) Marker {
	marker := &MockMarker{opts: opts}
	m.markers = append(m.markers, marker)
	return marker
}

func (m *MockEngine) AddInfoWindow(content string) InfoWindow {
	info := &MockInfoWindow{content: content}
	m.infos = append(m.infos, info)
	return info
}

func (m *MockEngine) AddPolyline(opts PolylineOptions) Polyline {
	polyline := &MockPolyline{opts: opts}
	m.polylines = append(m.polylines, polyline)
	return polyline
}

type MockMarker struct {
	opts     MarkerOptions
	handlers []func()
}

func (m *MockMarker) Position() orb.Point { return m.opts.Position }
func (m *MockMarker) OnClick(h func()) { m.handlers = append(m.handlers, h) }
func (m *MockMarker) Click() {
	for _, h := range m.handlers {
		h()
	}
}

type MockInfoWindow struct {
	content    string
	open       bool
	visible    bool
	anchor     Marker
	handlers   []func()
	redisplays int
}

func (w *MockInfoWindow) Open(anchor Marker) {
	w.anchor = anchor
	if w.open {
		return
	}
	w.open = true
	w.fireReady()
}

func (w *MockInfoWindow) Close() { w.open = false }
func (w *MockInfoWindow) IsOpen() bool { return w.open }
func (w *MockInfoWindow) OnReady(h func()) { w.handlers = append(w.handlers, h) }
func (w *MockInfoWindow) SetVisible(v bool) { w.visible = v }

func (w *MockInfoWindow) Redisplay() {
	w.redisplays++
	w.fireReady()
}

func (w *MockInfoWindow) fireReady() {
	for _, h := range w.handlers {
		h()
	}
}

type MockPolyline struct {
	opts PolylineOptions
}

func (p *MockPolyline) Path() orb.LineString { return p.opts.Path }

// MockLocation is a settable URL fragment.
type MockLocation struct {
	mu      sync.Mutex
	hash    string
	changes chan struct{}
}

func (l *MockLocation) Hash() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hash
}

func (l *MockLocation) SetHash(hash string) {
	l.mu.Lock()
	l.hash = hash
	l.mu.Unlock()
}

// MockNotifyingLocation also announces fragment changes.
type MockNotifyingLocation struct {
	MockLocation
}

func (l *MockNotifyingLocation) HashChanges() <-chan struct{} {
	return l.changes
}

func (l *MockNotifyingLocation) Navigate(hash string) {
	l.SetHash(hash)
	l.changes <- struct{}{}
}

// MockDocument holds elements by id.
type MockDocument struct {
	elements map[string]*MockElement
}

func NewMockDocument() *MockDocument {
	return &MockDocument{elements: make(map[string]*MockElement)}
}

func (d *MockDocument) Add(id string, parentWidth int) *MockElement {
	el := &MockElement{doc: d, id: id, parentWidth: parentWidth}
	d.elements[id] = el
	return el
}

func (d *MockDocument) ElementByID(id string) (Element, bool) {
	el, ok := d.elements[id]
	if !ok {
		return nil, false
	}
	return el, true
}

type MockElement struct {
	doc         *MockDocument
	id          string
	parentWidth int
	hidden      bool
	size        Size
}

func (e *MockElement) ID() string { return e.id }
func (e *MockElement) ParentWidth() int { return e.parentWidth }
func (e *MockElement) Hide() { e.hidden = true }

func (e *MockElement) InsertAfter(id string, size Size) Element {
	el := e.doc.Add(id, e.parentWidth)
	el.size = size
	return el
}

type MockEngineFactory struct {
	engines []*MockEngine
}

func (f *MockEngineFactory) NewEngine(el Element, opts MapOptions) Engine {
	engine := &MockEngine{options: opts}
	f.engines = append(f.engines, engine)
	return engine
}

// MockSource serves fixed pages keyed by start offset.
type MockSource struct {
	pages    map[int]*tumblr.Page
	requests int
}

func (s *MockSource) FetchPage(ctx context.Context, start int) (*tumblr.Page, error) {
	s.requests++
	page, ok := s.pages[start]
	if !ok {
		return nil, fmt.Errorf("no page at %d", start)
	}
	return page, nil
}

func geoPost(id string, lat, lng float64) tumblr.Post {
	return tumblr.Post{
		ID:           tumblr.FlexString(id),
		Type:         tumblr.PostTypeRegular,
		URL:          "https://travels.example.com/post/" + id,
		RegularTitle: "Post " + id,
		RegularBody: fmt.Sprintf(`<p>Body %s</p><div class="geo"><span class="latitude">%v</span><span class="longitude">%v</span></div>`,
			id, lat, lng),
	}
}

func plainPost(id string) tumblr.Post {
	return tumblr.Post{
		ID:           tumblr.FlexString(id),
		Type:         tumblr.PostTypeRegular,
		RegularTitle: "Post " + id,
		RegularBody:  "<p>No location</p>",
	}
}
