package canvas

import (
	"github.com/paulmach/orb"

	"github.com/lysyi3m/tumblr-postmap/app/mapview"
)

var _ mapview.Engine = (*Map)(nil)

// Map records what a session draws. Like a browser map it is not safe for
// concurrent use; callers drive it from the session loop.
type Map struct {
	id        string
	options   mapview.MapOptions
	size      mapview.Size
	center    *orb.Point
	markers   []*Marker
	infos     []*InfoWindow
	polylines []*Polyline
}

func newMap(id string, opts mapview.MapOptions) *Map {
	return &Map{id: id, options: opts}
}

func (m *Map) Center() (orb.Point, bool) {
	if m.center == nil {
		return orb.Point{}, false
	}
	return *m.center, true
}

func (m *Map) SetCenter(center orb.Point) {
	m.center = &center
}

func (m *Map) AddMarker(opts mapview.MarkerOptions) mapview.Marker {
	marker := &Marker{position: opts.Position, title: opts.Title}
	m.markers = append(m.markers, marker)
	return marker
}

func (m *Map) AddInfoWindow(content string) mapview.InfoWindow {
	info := &InfoWindow{content: content}
	m.infos = append(m.infos, info)
	return info
}

func (m *Map) AddPolyline(opts mapview.PolylineOptions) mapview.Polyline {
	polyline := &Polyline{opts: opts}
	m.polylines = append(m.polylines, polyline)
	return polyline
}

func (m *Map) Markers() []*Marker {
	return m.markers
}

type Marker struct {
	position orb.Point
	title    string
	handlers []func()
	info     *InfoWindow
}

func (mk *Marker) Position() orb.Point {
	return mk.position
}

func (mk *Marker) Title() string {
	return mk.title
}

func (mk *Marker) OnClick(handler func()) {
	mk.handlers = append(mk.handlers, handler)
}

func (mk *Marker) Click() {
	for _, handler := range mk.handlers {
		handler()
	}
}

// Info returns the info window last opened on this marker.
func (mk *Marker) Info() *InfoWindow {
	return mk.info
}

type InfoWindow struct {
	content  string
	open     bool
	visible  bool
	anchor   *Marker
	handlers []func()
}

// Open attaches the window to the marker. Attaching fires the ready
// handlers, as the content is inserted into the page.
func (w *InfoWindow) Open(anchor mapview.Marker) {
	if marker, ok := anchor.(*Marker); ok {
		w.anchor = marker
		marker.info = w
	}
	if w.open {
		return
	}
	w.open = true
	w.fireReady()
}

func (w *InfoWindow) Close() {
	w.open = false
	w.visible = false
}

func (w *InfoWindow) IsOpen() bool {
	return w.open
}

func (w *InfoWindow) OnReady(handler func()) {
	w.handlers = append(w.handlers, handler)
}

func (w *InfoWindow) Redisplay() {
	if w.open {
		w.fireReady()
	}
}

func (w *InfoWindow) SetVisible(visible bool) {
	w.visible = visible
}

func (w *InfoWindow) Visible() bool {
	return w.visible
}

func (w *InfoWindow) Content() string {
	return w.content
}

func (w *InfoWindow) fireReady() {
	for _, handler := range w.handlers {
		handler()
	}
}

type Polyline struct {
	opts mapview.PolylineOptions
}

func (p *Polyline) Path() orb.LineString {
	return p.opts.Path
}
