package mapview

import (
	"log/slog"

	"github.com/paulmach/orb"

	"github.com/lysyi3m/tumblr-postmap/app/geo"
	"github.com/lysyi3m/tumblr-postmap/app/post"
	"github.com/lysyi3m/tumblr-postmap/app/tumblr"
)

// Track styling and the centre used when no post could be plotted.
const (
	TrackStrokeColor   = "#0000FF"
	TrackStrokeOpacity = 0.8
	TrackStrokeWeight  = 3
)

var DefaultCenter = orb.Point{131.036111, -25.345}

// Builder turns normalized posts into map entities.
type Builder struct {
	engine   Engine
	location Location
	state    *State
}

func NewBuilder(engine Engine, location Location, state *State) *Builder {
	return &Builder{
		engine:   engine,
		location: location,
		state:    state,
	}
}

// ProcessPage plots every supported, geo-bearing post of the page in order.
func (b *Builder) ProcessPage(page *tumblr.Page) int {
	plotted := 0
	for i := range page.Posts {
		normalized, ok := post.Extract(&page.Posts[i])
		if !ok {
			continue
		}
		if normalized.Geo == nil {
			slog.Debug("Post has no location, skipping", "id", normalized.PostID)
			continue
		}

		b.Add(normalized)
		plotted++
	}

	slog.Debug("Page plotted", "start", int(page.Start), "posts", len(page.Posts), "plotted", plotted)
	return plotted
}

// Add creates the marker and info window for a post with a coordinate.
func (b *Builder) Add(normalized *post.Normalized) *Entity {
	entity := &Entity{
		Key:  normalized.Key(),
		Post: normalized,
		Info: b.engine.AddInfoWindow(`<div class="infocontent">` + normalized.Content + `</div>`),
		Marker: b.engine.AddMarker(MarkerOptions{
			Position: *normalized.Geo,
			Title:    normalized.PlainTitle,
		}),
	}

	entity.Marker.OnClick(b.clickHandler(entity))
	entity.Info.OnReady(readyHandler(entity))

	b.state.Points = append(b.state.Points, *normalized.Geo)
	b.state.Infos = append(b.state.Infos, entity.Info)
	b.state.Markers[entity.Key] = entity
	b.state.Entities = append(b.state.Entities, entity)

	if _, ok := b.engine.Center(); !ok {
		hash := b.location.Hash()
		if hash == "" || hash == entity.Key {
			b.engine.SetCenter(*normalized.Geo)
			b.selectEntity(entity)
		}
	}

	return entity
}

func (b *Builder) clickHandler(entity *Entity) func() {
	return func() {
		b.selectEntity(entity)
	}
}

func (b *Builder) selectEntity(entity *Entity) {
	for _, info := range b.state.Infos {
		info.Close()
	}
	entity.Info.Open(entity.Marker)
}

// The engine applies styling reliably only on the second ready cycle: the
// first one forces a redisplay, the second marks the content visible.
func readyHandler(entity *Entity) func() {
	return func() {
		if entity.domReady {
			entity.Info.SetVisible(true)
			return
		}
		entity.domReady = true
		entity.Info.Redisplay()
	}
}

// Finish draws the track and settles the centre once pagination is done.
func (b *Builder) Finish() {
	if len(b.state.Points) > 1 {
		path := make(orb.LineString, len(b.state.Points))
		copy(path, b.state.Points)

		b.state.Track = b.engine.AddPolyline(PolylineOptions{
			Path:          path,
			StrokeColor:   TrackStrokeColor,
			StrokeOpacity: TrackStrokeOpacity,
			StrokeWeight:  TrackStrokeWeight,
		})
	}

	if _, ok := b.engine.Center(); !ok {
		b.engine.SetCenter(DefaultCenter)
	}

	slog.Info("Map ready",
		"markers", len(b.state.Entities),
		"track", b.state.Track != nil,
		"track_length_m", int(geo.TrackLength(b.state.Points)))
}
