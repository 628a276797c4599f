// Package config handles configuration loading and validation for linemark.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// CursorPosition controls where the cursor lands on a line after navigating
// to a mark.
type CursorPosition string

const (
	CursorLineStart CursorPosition = "line_start"
	CursorLineEnd   CursorPosition = "line_end"
)

// IsValid reports whether p is a supported cursor position.
func (p CursorPosition) IsValid() bool {
	switch p {
	case CursorLineStart, CursorLineEnd:
		return true
	default:
		return false
	}
}

// LineStyle is the border style used when a marked line is highlighted.
type LineStyle string

const (
	LineStyleSolid  LineStyle = "solid"
	LineStyleDashed LineStyle = "dashed"
	LineStyleDotted LineStyle = "dotted"
)

// IsValid reports whether s is a supported line style.
func (s LineStyle) IsValid() bool {
	switch s {
	case LineStyleSolid, LineStyleDashed, LineStyleDotted:
		return true
	default:
		return false
	}
}

// Config holds the application configuration.
type Config struct {
	StoreFile  string           `yaml:"store_file" toml:"store_file"`
	Watch      bool             `yaml:"watch"      toml:"watch"`
	Navigation NavigationConfig `yaml:"navigation" toml:"navigation"`
	Render     RenderConfig     `yaml:"render"     toml:"render"`
	DataDir    string           `yaml:"-"          toml:"-"` // set by caller, not from config file
}

// NavigationConfig controls cursor placement when jumping between marks.
type NavigationConfig struct {
	AlignTop       bool           `yaml:"align_top"       toml:"align_top"`       // scroll the target line to the top of the view
	CursorPosition CursorPosition `yaml:"cursor_position" toml:"cursor_position"` // line_start or line_end
}

// RenderConfig controls how marked lines are drawn.
type RenderConfig struct {
	RenderLine bool      `yaml:"render_line" toml:"render_line"` // highlight the whole marked line
	LineColor  string    `yaml:"line_color"  toml:"line_color"`  // hex color, e.g. #65EAB9
	LineStyle  LineStyle `yaml:"line_style"  toml:"line_style"`  // solid, dashed or dotted
	GutterIcon string    `yaml:"gutter_icon" toml:"gutter_icon"` // sign drawn next to marked lines
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Watch: true,
		Navigation: NavigationConfig{
			CursorPosition: CursorLineStart,
		},
		Render: RenderConfig{
			RenderLine: false,
			LineColor:  "#65EAB9",
			LineStyle:  LineStyleSolid,
			GutterIcon: "●",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := unmarshal(configPath, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// unmarshal decodes data as TOML when path has a .toml extension and as
// YAML otherwise.
func unmarshal(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.StoreFile == "" && c.DataDir != "" {
		c.StoreFile = filepath.Join(c.DataDir, "marks.json")
	}
	if c.Navigation.CursorPosition == "" {
		c.Navigation.CursorPosition = defaults.Navigation.CursorPosition
	}
	if c.Render.LineColor == "" {
		c.Render.LineColor = defaults.Render.LineColor
	}
	if c.Render.LineStyle == "" {
		c.Render.LineStyle = defaults.Render.LineStyle
	}
	if c.Render.GutterIcon == "" {
		c.Render.GutterIcon = defaults.Render.GutterIcon
	}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.StoreFile == "" {
		return fmt.Errorf("store_file cannot be empty")
	}

	if !c.Navigation.CursorPosition.IsValid() {
		return fmt.Errorf("navigation.cursor_position has invalid value %q", c.Navigation.CursorPosition)
	}

	if !c.Render.LineStyle.IsValid() {
		return fmt.Errorf("render.line_style has invalid value %q", c.Render.LineStyle)
	}

	if !hexColor.MatchString(c.Render.LineColor) {
		return fmt.Errorf("render.line_color must be a hex color, got %q", c.Render.LineColor)
	}

	return nil
}

// LogFile returns the default log file path inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "linemark.log")
}
