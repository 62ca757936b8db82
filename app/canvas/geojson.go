package canvas

import (
	"github.com/paulmach/orb/geojson"

	"github.com/lysyi3m/tumblr-postmap/app/geo"
	"github.com/lysyi3m/tumblr-postmap/app/mapview"
)

// FeatureCollection renders the map as GeoJSON: a point per marker in
// plotting order followed by the track, if one was drawn. Markers are keyed
// by the post fragment recorded in state; state may be nil.
func (m *Map) FeatureCollection(state *mapview.State) *geojson.FeatureCollection {
	keys := make(map[*Marker]string)
	if state != nil {
		for _, entity := range state.Entities {
			if marker, ok := entity.Marker.(*Marker); ok {
				keys[marker] = entity.Key
			}
		}
	}

	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"map": m.properties(),
	}

	for i, marker := range m.markers {
		f := geojson.NewFeature(marker.position)
		f.Properties["kind"] = "marker"
		f.Properties["title"] = marker.title
		if key, ok := keys[marker]; ok {
			f.ID = key
			f.Properties["key"] = key
		}

		if i < len(m.infos) {
			info := m.infos[i]
			f.Properties["content"] = info.content
			f.Properties["open"] = info.open
			f.Properties["visible"] = info.visible
		}

		fc.Append(f)
	}

	for _, polyline := range m.polylines {
		f := geojson.NewFeature(polyline.opts.Path)
		f.Properties["kind"] = "track"
		f.Properties["stroke"] = polyline.opts.StrokeColor
		f.Properties["stroke-opacity"] = polyline.opts.StrokeOpacity
		f.Properties["stroke-width"] = polyline.opts.StrokeWeight
		f.Properties["length_m"] = int(geo.TrackLength(polyline.opts.Path))
		fc.Append(f)
	}

	return fc
}

func (m *Map) properties() map[string]any {
	props := map[string]any{
		"id":          m.id,
		"zoom":        m.options.Zoom,
		"map_type_id": m.options.MapTypeID,
	}
	for k, v := range m.options.Extra {
		if _, taken := props[k]; !taken {
			props[k] = v
		}
	}
	if m.center != nil {
		props["center"] = []float64{m.center.Lon(), m.center.Lat()}
	}
	if m.size.Width != "" || m.size.Height != "" {
		props["size"] = m.size
	}
	return props
}
