package mapview

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMapID     = "tumblrpostmap"
	DefaultZoom      = 8
	DefaultMapTypeID = "hybrid"
)

type Options struct {
	MapID      string     `yaml:"map_id"`
	MapSize    *Size      `yaml:"map_size"`
	MapOptions MapOptions `yaml:"map_options"`
}

// Size holds CSS lengths, e.g. "100%" or "540px".
type Size struct {
	Width  string `yaml:"width" json:"width"`
	Height string `yaml:"height" json:"height"`
}

// MapOptions are handed to the engine. Keys other than zoom and
// map_type_id are passed through untouched.
type MapOptions struct {
	Zoom      int            `yaml:"zoom"`
	MapTypeID string         `yaml:"map_type_id"`
	Extra     map[string]any `yaml:",inline"`
}

func DefaultOptions() Options {
	return Options{
		MapID: DefaultMapID,
		MapOptions: MapOptions{
			Zoom:      DefaultZoom,
			MapTypeID: DefaultMapTypeID,
		},
	}
}

// MapSizeFor returns the explicit size if one is configured, otherwise the
// full parent width at a 16:9 ratio.
func (o Options) MapSizeFor(parentWidth int) Size {
	if o.MapSize != nil {
		return *o.MapSize
	}

	height := int(math.Round(float64(parentWidth) * 9.0 / 16))
	return Size{Width: "100%", Height: strconv.Itoa(height) + "px"}
}

// LoadOptionsFile overlays the YAML file at path onto opts.
func LoadOptionsFile(path string, opts *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, opts); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid map options %s: %w", path, err)
	}

	return nil
}

func (o *Options) Validate() error {
	if o.MapID == "" {
		return fmt.Errorf("map id is required")
	}

	if o.MapSize != nil && (o.MapSize.Width == "" || o.MapSize.Height == "") {
		return fmt.Errorf("map size needs both width and height")
	}

	if o.MapOptions.Zoom < 0 {
		return fmt.Errorf("zoom must be non-negative")
	}

	// custom map types registered with the engine are passed through
	if o.MapOptions.MapTypeID == "" {
		return fmt.Errorf("map type is required")
	}

	return nil
}
