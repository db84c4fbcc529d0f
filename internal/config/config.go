package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"meshscene/internal/snapshot"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds output paths and render settings.
type Config struct {
	// Paths
	OutputDir string `json:"output_dir"`

	// Render settings
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Scale       int     `json:"scale"`
	Supersample int     `json:"supersample"`
	Background  string  `json:"background"`
	Format      string  `json:"format"`
	ZoomFactor  float64 `json:"ngl_zoom_factor"`
	Workers     int     `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.Width <= 0 {
		c.Width = 1080
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.Scale <= 0 {
		c.Scale = 4
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Background == "" {
		c.Background = "white"
	}
	c.Format = strings.TrimPrefix(strings.ToLower(c.Format), ".")
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.ZoomFactor <= 0 {
		c.ZoomFactor = 300
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate checks settings Resolve cannot default.
func (c Config) Validate() error {
	if !slices.Contains(snapshot.Formats, c.Format) {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalid, c.Format, strings.Join(snapshot.Formats, ", "))
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	return nil
}

// OutputSize is the size of saved images: the window size times Scale.
func (c Config) OutputSize() (w, h int) {
	return c.Width * c.Scale, c.Height * c.Scale
}

// BackgroundColor returns the parsed background, white when unparseable.
func (c Config) BackgroundColor() color.NRGBA {
	bg, err := ParseColor(c.Background)
	if err != nil {
		return color.NRGBA{255, 255, 255, 255}
	}
	return bg
}

// ParseColor accepts an SVG color name ("white", "lightgray") or a hex
// triplet "#rrggbb".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{c.R, c.G, c.B, 255}, nil
	}
	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
		}
	}
	return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir   string
	Width       int
	Height      int
	Scale       int
	Supersample int
	Format      string
	Workers     int
}
