package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestDistance(t *testing.T) {
	// one degree of latitude along a meridian
	d := Distance(orb.Point{0, 0}, orb.Point{0, 1})
	expected := EarthRadiusMeters * math.Pi / 180
	if math.Abs(d-expected) > 1 {
		t.Errorf("Expected %.1f m, got %.1f m", expected, d)
	}
}

func TestTrackLength(t *testing.T) {
	if got := TrackLength(nil); got != 0 {
		t.Errorf("Expected 0 for empty track, got %v", got)
	}
	if got := TrackLength(orb.LineString{{10, 10}}); got != 0 {
		t.Errorf("Expected 0 for single point, got %v", got)
	}

	track := orb.LineString{{0, 0}, {0, 1}, {0, 2}}
	expected := 2 * Distance(orb.Point{0, 0}, orb.Point{0, 1})
	if got := TrackLength(track); math.Abs(got-expected) > 1 {
		t.Errorf("Expected %.1f m, got %.1f m", expected, got)
	}
}
