package post

import (
	"strings"

	"github.com/lysyi3m/tumblr-postmap/app/tumblr"
)

type photoExtractor struct{}

func (photoExtractor) Title(p *tumblr.Post) string {
	return p.PhotoCaption
}

func (photoExtractor) Body(p *tumblr.Post) string {
	if len(p.Photos) == 0 {
		return imageTag(p.PhotoURL75)
	}

	var body strings.Builder
	for _, photo := range p.Photos {
		body.WriteString(imageTag(photo.PhotoURL75))
	}
	return body.String()
}

// Photo posts carry their microformat in the caption.
func (photoExtractor) GeoSource(title, body string) string {
	return title
}

func (photoExtractor) Content(title, body, link string) string {
	return "<p>" + body + title + "</p>" + permalink(link)
}
