package geo

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/paulmach/orb"
)

// floatPrefix matches the leading number a browser's parseFloat would accept.
var floatPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseMicroformat locates the first element with the "geo" class in the
// markup fragment and reads its "latitude" and "longitude" children.
// It reports false only when there is no geo element. Unparseable
// latitude or longitude text yields NaN components.
func ParseMicroformat(fragment string) (orb.Point, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + fragment + "</div>"))
	if err != nil {
		return orb.Point{}, false
	}

	block := doc.Find(".geo").First()
	if block.Length() == 0 {
		return orb.Point{}, false
	}

	lat := readValue(block.Find(".latitude"))
	lng := readValue(block.Find(".longitude"))

	return orb.Point{lng, lat}, true
}

// Valid reports whether p is a plottable coordinate. Out-of-range values
// are left for the map engine to clamp and wrap.
func Valid(p orb.Point) bool {
	lat, lng := p.Lat(), p.Lon()
	return !math.IsNaN(lat) && !math.IsNaN(lng) && !math.IsInf(lat, 0) && !math.IsInf(lng, 0)
}

func readValue(sel *goquery.Selection) float64 {
	value := ParseFloat(sel.Text())
	if !math.IsNaN(value) {
		return value
	}

	// <abbr class="latitude" title="37.386">N 37° 23.1</abbr>
	if title, ok := sel.First().Attr("title"); ok {
		return ParseFloat(title)
	}

	return value
}

// ParseFloat mirrors JavaScript's parseFloat: leading whitespace is skipped,
// the longest numeric prefix is converted and anything else yields NaN.
func ParseFloat(s string) float64 {
	match := floatPrefix.FindString(strings.TrimSpace(s))
	if match == "" {
		return math.NaN()
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}
