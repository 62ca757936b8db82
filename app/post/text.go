package post

import (
	"github.com/lysyi3m/tumblr-postmap/app/tumblr"
)

type regularExtractor struct{}

func (regularExtractor) Title(p *tumblr.Post) string {
	return p.RegularTitle
}

func (regularExtractor) Body(p *tumblr.Post) string {
	return p.RegularBody
}

func (regularExtractor) GeoSource(title, body string) string {
	return body
}

func (regularExtractor) Content(title, body, link string) string {
	return "<h1>" + title + "</h1>" + body + permalink(link)
}

// quoteExtractor reads like a regular post with the quote as title and the
// source as body.
type quoteExtractor struct {
	regularExtractor
}

func (quoteExtractor) Title(p *tumblr.Post) string {
	return p.QuoteText
}

func (quoteExtractor) Body(p *tumblr.Post) string {
	return p.QuoteSource
}

func (quoteExtractor) Content(title, body, link string) string {
	return "<p><em>" + title + "</em></p><p>-- " + body + "</p>" + permalink(link)
}
