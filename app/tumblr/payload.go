package tumblr

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodePage decodes a read API response. The body is either bare JSON or
// a script wrapping it, such as "callback({...});" or
// "var tumblr_api_read = {...};". The outermost JSON object is decoded.
func DecodePage(data []byte) (*Page, error) {
	data = bytes.TrimSpace(data)

	begin := bytes.IndexByte(data, '{')
	end := bytes.LastIndexByte(data, '}')
	if begin < 0 || end < begin {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var page Page
	if err := json.Unmarshal(data[begin:end+1], &page); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	return &page, nil
}
