package api

import (
	"context"

	"github.com/paulmach/orb/geojson"

	"github.com/lysyi3m/tumblr-postmap/app/loop"
	"github.com/lysyi3m/tumblr-postmap/app/mapview"
)

// Doer runs functions on the session loop.
type Doer interface {
	Do(ctx context.Context, fn func()) error
}

var _ Doer = (*loop.Loop)(nil)

// MapRenderer exports the map a session draws on.
type MapRenderer interface {
	FeatureCollection(state *mapview.State) *geojson.FeatureCollection
}

// Navigator changes the page fragment.
type Navigator interface {
	mapview.Location
	SetHash(hash string)
}

type Handler struct {
	loop     Doer
	session  *mapview.Session
	renderer MapRenderer
	location Navigator
	version  string
}

type MarkerInfo struct {
	Key       string  `json:"key"`
	PostID    string  `json:"post_id"`
	Title     string  `json:"title"`
	Summary   string  `json:"summary,omitempty"`
	Date      string  `json:"date,omitempty"`
	Icon      string  `json:"icon,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Open      bool    `json:"open"`
}

type LocationRequest struct {
	Hash string `json:"hash"`
}
