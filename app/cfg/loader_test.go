package cfg

import (
	"os"
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// set at build time
		t.Logf("Version: %s", version)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TZ", "UTC")

	cfg, err := load([]string{"--blog-url", "https://example.tumblr.com/"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.BlogURL != "https://example.tumblr.com" {
		t.Errorf("Expected trailing slash trimmed, got '%s'", cfg.BlogURL)
	}
	if cfg.Source != SourceAPI {
		t.Errorf("Expected source '%s', got '%s'", SourceAPI, cfg.Source)
	}
	if cfg.Tag != "geo" {
		t.Errorf("Expected tag 'geo', got '%s'", cfg.Tag)
	}
	if cfg.Callback != "TumblrPostMap.process" {
		t.Errorf("Expected callback 'TumblrPostMap.process', got '%s'", cfg.Callback)
	}
	if cfg.ContainerID != "tumblrpostmap-container" {
		t.Errorf("Expected container id 'tumblrpostmap-container', got '%s'", cfg.ContainerID)
	}
	if cfg.ParentWidth != 960 {
		t.Errorf("Expected parent width 960, got %d", cfg.ParentWidth)
	}
	if cfg.PollInterval != 300*time.Millisecond {
		t.Errorf("Expected poll interval 300ms, got %v", cfg.PollInterval)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.Output != "-" {
		t.Errorf("Expected output '-', got '%s'", cfg.Output)
	}
	if cfg.Serve {
		t.Error("Expected serve to be disabled")
	}
	if Get() != cfg {
		t.Error("Expected Get to return the loaded configuration")
	}
}

func TestLoad_Flags(t *testing.T) {
	t.Setenv("TZ", "UTC")

	cfg, err := load([]string{
		"--blog-url", "https://example.tumblr.com",
		"--source", "rss",
		"--hash", "#p42",
		"--map-width", "640px",
		"--map-height", "480px",
		"--poll-interval", "50",
		"--serve",
		"--debug",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Source != SourceRSS {
		t.Errorf("Expected source '%s', got '%s'", SourceRSS, cfg.Source)
	}
	if cfg.Hash != "#p42" {
		t.Errorf("Expected hash '#p42', got '%s'", cfg.Hash)
	}
	if cfg.MapWidth != "640px" || cfg.MapHeight != "480px" {
		t.Errorf("Expected size 640px x 480px, got %s x %s", cfg.MapWidth, cfg.MapHeight)
	}
	if cfg.PollInterval != 50*time.Millisecond {
		t.Errorf("Expected poll interval 50ms, got %v", cfg.PollInterval)
	}
	if !cfg.Serve || !cfg.Debug {
		t.Error("Expected serve and debug to be enabled")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TZ", "UTC")
	t.Setenv("BLOG_URL", "https://env.tumblr.com")
	t.Setenv("TAG", "travel")

	cfg, err := load([]string{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.BlogURL != "https://env.tumblr.com" {
		t.Errorf("Expected blog URL from env, got '%s'", cfg.BlogURL)
	}
	if cfg.Tag != "travel" {
		t.Errorf("Expected tag 'travel', got '%s'", cfg.Tag)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("TZ", "UTC")
	t.Setenv("BLOG_URL", "")
	os.Unsetenv("BLOG_URL")

	tests := []struct {
		name string
		args []string
	}{
		{"missing blog url", []string{}},
		{"unknown source", []string{"--blog-url", "https://example.tumblr.com", "--source", "atom"}},
		{"zero timeout", []string{"--blog-url", "https://example.tumblr.com", "--timeout", "0"}},
		{"negative poll interval", []string{"--blog-url", "https://example.tumblr.com", "--poll-interval=-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(tt.args); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
