package cfg

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Source configuration
	BlogURL   string `long:"blog-url" env:"BLOG_URL" description:"Base URL of the Tumblr blog (e.g., https://example.tumblr.com)" required:"true"`
	Source    string `long:"source" env:"SOURCE" default:"api" choice:"api" choice:"rss" description:"Where posts are read from"`
	Tag       string `long:"tag" env:"TAG" default:"geo" description:"Tag selecting the posts to plot"`
	Callback  string `long:"callback" env:"CALLBACK" default:"TumblrPostMap.process" description:"JSONP callback name sent to the read API"`
	Timeout   int    `long:"timeout" env:"TIMEOUT" default:"30" description:"HTTP request timeout in seconds"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Tumblr PostMap/1.0" description:"User agent string for HTTP requests"`

	// Map configuration
	MapConfig    string `long:"map-config" env:"MAP_CONFIG" description:"YAML file with map options"`
	ContainerID  string `long:"container-id" env:"CONTAINER_ID" default:"tumblrpostmap-container" description:"Id of the element the map replaces"`
	MapID        string `long:"map-id" env:"MAP_ID" description:"Id of the inserted map element"`
	MapWidth     string `long:"map-width" env:"MAP_WIDTH" description:"Map width (CSS length)"`
	MapHeight    string `long:"map-height" env:"MAP_HEIGHT" description:"Map height (CSS length)"`
	ParentWidth  int    `long:"parent-width" env:"PARENT_WIDTH" default:"960" description:"Width in pixels of the container's parent"`
	Hash         string `long:"hash" env:"HASH" description:"Initial URL fragment selecting a post (e.g., #p123)"`
	PollInterval int    `long:"poll-interval" env:"POLL_INTERVAL" default:"300" description:"Fragment polling interval in milliseconds"`

	// Output configuration
	Output string `long:"output" env:"OUTPUT" default:"-" description:"File the GeoJSON map is written to ('-' for stdout)"`
	Serve  bool   `long:"serve" env:"SERVE" description:"Serve the map over HTTP instead of writing it out"`
	Port   string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return load(nil)
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if strings.TrimSpace(raw.BlogURL) == "" {
		return nil, fmt.Errorf("blog URL is required")
	}
	if raw.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %d", raw.Timeout)
	}
	if raw.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %d", raw.PollInterval)
	}

	cfg := &Cfg{
		BlogURL:      strings.TrimRight(raw.BlogURL, "/"),
		Source:       raw.Source,
		Tag:          raw.Tag,
		Callback:     raw.Callback,
		Timeout:      time.Duration(raw.Timeout) * time.Second,
		UserAgent:    raw.UserAgent,
		MapConfig:    raw.MapConfig,
		ContainerID:  raw.ContainerID,
		MapID:        raw.MapID,
		MapWidth:     raw.MapWidth,
		MapHeight:    raw.MapHeight,
		ParentWidth:  raw.ParentWidth,
		Hash:         raw.Hash,
		PollInterval: time.Duration(raw.PollInterval) * time.Millisecond,
		Output:       raw.Output,
		Serve:        raw.Serve,
		Port:         raw.Port,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
