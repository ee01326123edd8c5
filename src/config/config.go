// Package config loads viewer/renderer settings: built-in defaults, then an optional .env
// file, then a YAML file, then LISTINGCHARTS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "LISTINGCHARTS_"

// DefaultPath is read when no explicit path is given and the file exists.
const DefaultPath = "listingcharts.yaml"

type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"` // price-change chart; land-price uses LandHeight
	// LandHeight is the plot height of the (shorter) land-price chart.
	LandHeight int `yaml:"land_height"`

	OutDir  string   `yaml:"out_dir"`
	Formats []string `yaml:"formats"`

	Listen string `yaml:"listen"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ShowSubject   bool `yaml:"show_subject"`
	ShowTrendline bool `yaml:"show_trendline"`

	Theme string `yaml:"theme"` // viewer chrome: light or dark
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:         900,
		Height:        480,
		LandHeight:    420,
		OutDir:        "charts_out",
		Formats:       []string{"png"},
		Listen:        ":8080",
		LogLevel:      "info",
		LogFormat:     "auto",
		ShowSubject:   true,
		ShowTrendline: true,
		Theme:         "light",
	}
}

// Load builds a Config. An empty path falls back to DefaultPath when present; an explicit
// path that cannot be read is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	// .env is optional; values already in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath
		}
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	ints := map[string]*int{"WIDTH": &cfg.Width, "HEIGHT": &cfg.Height, "LAND_HEIGHT": &cfg.LandHeight}
	for k, dst := range ints {
		if v := os.Getenv(envPrefix + k); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, k, err)
			}
			*dst = n
		}
	}
	strs := map[string]*string{
		"OUT_DIR": &cfg.OutDir, "LISTEN": &cfg.Listen, "LOG_LEVEL": &cfg.LogLevel,
		"LOG_FORMAT": &cfg.LogFormat, "THEME": &cfg.Theme,
	}
	for k, dst := range strs {
		if v := os.Getenv(envPrefix + k); v != "" {
			*dst = v
		}
	}
	bools := map[string]*bool{"SHOW_SUBJECT": &cfg.ShowSubject, "SHOW_TRENDLINE": &cfg.ShowTrendline}
	for k, dst := range bools {
		if v := os.Getenv(envPrefix + k); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, k, err)
			}
			*dst = b
		}
	}
	if v := os.Getenv(envPrefix + "FORMATS"); v != "" {
		cfg.Formats = splitList(v)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 || c.LandHeight <= 0 {
		errs = append(errs, fmt.Errorf("chart sizes must be positive (width=%d height=%d land_height=%d)", c.Width, c.Height, c.LandHeight))
	}
	if len(c.Formats) == 0 {
		errs = append(errs, errors.New("at least one output format is required"))
	}
	for _, f := range c.Formats {
		switch strings.ToLower(f) {
		case "png", "svg":
		default:
			errs = append(errs, fmt.Errorf("unknown output format %q", f))
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "auto", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	switch strings.ToLower(c.Theme) {
	case "light", "dark":
	default:
		errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
	}
	return errors.Join(errs...)
}
