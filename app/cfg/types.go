package cfg

import "time"

const (
	SourceAPI = "api"
	SourceRSS = "rss"
)

type Cfg struct {
	// Source configuration
	BlogURL   string
	Source    string
	Tag       string
	Callback  string
	Timeout   time.Duration
	UserAgent string

	// Map configuration
	MapConfig    string
	ContainerID  string
	MapID        string
	MapWidth     string
	MapHeight    string
	ParentWidth  int
	Hash         string
	PollInterval time.Duration

	// Output configuration
	Output string
	Serve  bool
	Port   string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
