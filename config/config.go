// Package config loads designpipe settings from an optional TOML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gaurav-prasanna/designpipe/core/errors"
	"github.com/gaurav-prasanna/designpipe/core/fetch"
	"github.com/gaurav-prasanna/designpipe/core/render"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "designpipe.toml"

// TokenEnv names the environment variable holding the Figma API token.
const TokenEnv = "FIGMA_API_TOKEN"

// Config holds every tunable of a conversion run.
type Config struct {
	OutputDir            string  `toml:"output_dir"`
	Stylesheet           string  `toml:"stylesheet"`
	Page                 string  `toml:"page"`
	Workers              int     `toml:"workers"`
	TextOffsetMultiplier float64 `toml:"text_offset_multiplier"`
	ViewportWidth        float64 `toml:"viewport_width"`
	ViewportHeight       float64 `toml:"viewport_height"`

	Figma Figma `toml:"figma"`
}

// Figma configures the API client.
type Figma struct {
	Token         string        `toml:"token"`
	APIBase       string        `toml:"api_base"`
	RateLimitWait time.Duration `toml:"rate_limit_wait"`
	MaxAttempts   int           `toml:"max_attempts"`
	CacheDir      string        `toml:"cache_dir"`
	CacheTTL      time.Duration `toml:"cache_ttl"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		OutputDir:            "output",
		Stylesheet:           render.DefaultStylesheet,
		Workers:              1,
		TextOffsetMultiplier: render.DefaultTextOffsetMultiplier,
		ViewportWidth:        render.DefaultViewportWidth,
		ViewportHeight:       render.DefaultViewportHeight,
		Figma: Figma{
			APIBase:       fetch.DefaultBaseURL,
			RateLimitWait: fetch.DefaultRateLimitWait,
			MaxAttempts:   fetch.DefaultMaxAttempts,
			CacheTTL:      time.Hour,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is DefaultPath; an explicitly named file must exist. The token from
// the environment always wins over the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config %s", path)
		}
	case os.IsNotExist(err) && path == DefaultPath:
	default:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if tok := os.Getenv(TokenEnv); tok != "" {
		cfg.Figma.Token = tok
	}
	return cfg, nil
}

// Validate rejects settings no run could use.
func (c Config) Validate() error {
	switch {
	case c.Stylesheet == "":
		return errors.New(errors.ErrCodeInvalidInput, "stylesheet name is empty")
	case strings.ContainsAny(c.Stylesheet, `/\`) || c.Stylesheet == "." || c.Stylesheet == "..":
		return errors.New(errors.ErrCodeInvalidInput, "stylesheet must be a file name, not a path: %q", c.Stylesheet)
	case c.Workers < 1:
		return errors.New(errors.ErrCodeInvalidInput, "workers must be at least 1, got %d", c.Workers)
	case c.TextOffsetMultiplier < 0:
		return errors.New(errors.ErrCodeInvalidInput, "text_offset_multiplier must not be negative")
	case c.ViewportWidth <= 0 || c.ViewportHeight <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "viewport must be positive, got %gx%g", c.ViewportWidth, c.ViewportHeight)
	case c.Figma.MaxAttempts < 1:
		return errors.New(errors.ErrCodeInvalidInput, "max_attempts must be at least 1")
	case c.Figma.RateLimitWait < 0:
		return errors.New(errors.ErrCodeInvalidInput, "rate_limit_wait must not be negative")
	case c.Figma.CacheTTL <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "cache_ttl must be positive")
	}
	return nil
}
