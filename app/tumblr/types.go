package tumblr

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type PostType string

const (
	PostTypePhoto   PostType = "photo"
	PostTypeRegular PostType = "regular"
	PostTypeQuote   PostType = "quote"
)

// Post is a single post as returned by the v1 read API. Only the fields
// needed to place posts on a map are decoded.
type Post struct {
	ID            FlexString `json:"id"`
	Type          PostType   `json:"type"`
	URL           string     `json:"url"`
	UnixTimestamp int64      `json:"unix-timestamp"`

	PhotoCaption string  `json:"photo-caption"`
	PhotoURL100  string  `json:"photo-url-100"`
	PhotoURL75   string  `json:"photo-url-75"`
	Photos       []Photo `json:"photos"`

	RegularTitle string `json:"regular-title"`
	RegularBody  string `json:"regular-body"`

	QuoteText   string `json:"quote-text"`
	QuoteSource string `json:"quote-source"`
}

type Photo struct {
	Caption    string `json:"caption"`
	PhotoURL75 string `json:"photo-url-75"`
}

func (p Post) Date() time.Time {
	return time.Unix(p.UnixTimestamp, 0)
}

// Page is one response of the paged feed.
type Page struct {
	Posts []Post  `json:"posts"`
	Start FlexInt `json:"posts-start"`
	Total FlexInt `json:"posts-total"`
}

// FlexString accepts a JSON string or number.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = FlexString(num.String())
	return nil
}

// FlexInt accepts a JSON number or a numeric string. Like parseInt, a
// string that does not start with digits decodes to 0.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	var s FlexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}

	digits := leadingInt(strings.TrimSpace(string(s)))
	if digits == "" {
		*n = 0
		return nil
	}

	value, err := strconv.Atoi(digits)
	if err != nil {
		return err
	}
	*n = FlexInt(value)
	return nil
}

func leadingInt(s string) string {
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	if end == 1 && (s[0] == '-' || s[0] == '+') {
		return ""
	}
	return s[:end]
}
