package geo

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

const EarthRadiusMeters = 6371008.8

// Distance returns the great-circle distance between two points in meters.
func Distance(a, b orb.Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat(), a.Lon())
	p2 := s2.LatLngFromDegrees(b.Lat(), b.Lon())
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// TrackLength sums the distances between consecutive points of the track.
func TrackLength(track orb.LineString) float64 {
	total := 0.0
	for i := 1; i < len(track); i++ {
		total += Distance(track[i-1], track[i])
	}
	return total
}
