package post

import (
	"time"

	"github.com/paulmach/orb"
)

// Normalized is the field set shared by every supported post type.
type Normalized struct {
	PostID     string
	Date       time.Time
	Icon       string
	Geo        *orb.Point // nil when the post carries no usable coordinate
	Title      string
	Body       string
	Content    string
	PlainTitle string
	PlainBody  string
}

// Key is the URL fragment that selects the post on the map.
func (n *Normalized) Key() string {
	return "#p" + n.PostID
}
