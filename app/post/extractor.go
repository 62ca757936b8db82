package post

import (
	"html"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/lysyi3m/tumblr-postmap/app/geo"
	"github.com/lysyi3m/tumblr-postmap/app/tumblr"
)

// FieldExtractor picks the type-specific fields out of a raw post.
type FieldExtractor interface {
	Title(p *tumblr.Post) string
	Body(p *tumblr.Post) string
	// GeoSource returns the markup the geo microformat is embedded in.
	GeoSource(title, body string) string
	Content(title, body, link string) string
}

var extractors = map[tumblr.PostType]FieldExtractor{
	tumblr.PostTypePhoto:   photoExtractor{},
	tumblr.PostTypeRegular: regularExtractor{},
	tumblr.PostTypeQuote:   quoteExtractor{},
}

// Supported reports whether posts of type t can be extracted.
func Supported(t tumblr.PostType) bool {
	_, ok := extractors[t]
	return ok
}

// Extract normalizes a raw post. It returns false for unsupported post
// types. A post without a valid coordinate is still returned with a nil Geo.
func Extract(p *tumblr.Post) (*Normalized, bool) {
	extractor, ok := extractors[p.Type]
	if !ok {
		slog.Debug("Unsupported post type, skipping", "id", string(p.ID), "type", string(p.Type))
		return nil, false
	}

	title := extractor.Title(p)
	body := extractor.Body(p)
	link := p.URL

	normalized := &Normalized{
		PostID:     string(p.ID),
		Date:       p.Date(),
		Icon:       icon(p),
		Title:      title,
		Body:       body,
		Content:    extractor.Content(title, body, link),
		PlainTitle: plainText(title),
		PlainBody:  firstParagraph(body),
	}

	if point, found := geo.ParseMicroformat(extractor.GeoSource(title, body)); found && geo.Valid(point) {
		normalized.Geo = &point
	}

	return normalized, true
}

func icon(p *tumblr.Post) string {
	if p.PhotoURL100 == "" {
		return ""
	}
	return imageTag(p.PhotoURL100)
}

func imageTag(src string) string {
	return `<img src="` + html.EscapeString(src) + `"></img>`
}

func permalink(link string) string {
	return `<p><a href="` + html.EscapeString(link) + `">` + html.EscapeString(link) + `</a></p>`
}

func parseFragment(markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + markup + "</div>"))
	if err != nil {
		return nil
	}
	return doc
}

func plainText(markup string) string {
	if markup == "" {
		return ""
	}

	doc := parseFragment(markup)
	if doc == nil {
		return ""
	}
	return norm.NFC.String(doc.Find("body").Text())
}

func firstParagraph(markup string) string {
	doc := parseFragment(markup)
	if doc == nil {
		return ""
	}

	paragraph := doc.Find("p").First()
	if paragraph.Length() == 0 {
		return ""
	}

	inner, err := paragraph.Html()
	if err != nil {
		return ""
	}
	return inner
}
