package mapview

import (
	"github.com/paulmach/orb"

	"github.com/lysyi3m/tumblr-postmap/app/post"
)

// Entity pairs the marker and info window plotted for one post.
type Entity struct {
	Key      string
	Post     *post.Normalized
	Marker   Marker
	Info     InfoWindow
	domReady bool
}

// State is everything a map session accumulates. It is only read and
// written on the session loop.
type State struct {
	Points   orb.LineString
	Infos    []InfoWindow
	Markers  map[string]*Entity
	Entities []*Entity
	Track    Polyline
	// MarkerID is the last URL fragment the selection controller applied.
	MarkerID string
}

func NewState() *State {
	return &State{
		Markers: make(map[string]*Entity),
	}
}

// OpenCount returns the number of info windows currently open.
func (s *State) OpenCount() int {
	open := 0
	for _, info := range s.Infos {
		if info.IsOpen() {
			open++
		}
	}
	return open
}
