// Package config loads formatter settings from pystrfmt.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"pystrfmt/internal/format"
)

// FileName is the manifest searched for in the working directory and
// its parents.
const FileName = "pystrfmt.toml"

// Config is the decoded manifest.
type Config struct {
	Format FormatSection `toml:"format"`
}

// FormatSection mirrors the [format] table.
type FormatSection struct {
	Quotes              string `toml:"quotes"`
	TargetVersion       string `toml:"target-version"`
	LineWidth           int    `toml:"line-width"`
	IndentWidth         int    `toml:"indent-width"`
	NormalizeHexEscapes bool   `toml:"normalize-hex-escapes"`
}

// Manifest is a loaded config with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Find walks from startDir upward looking for pystrfmt.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the nearest manifest. ok is false when no
// manifest exists, which is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := decode(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func decode(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate(path string) error {
	if c.Format.Quotes != "" {
		if _, ok := format.ParseQuoteStyle(c.Format.Quotes); !ok {
			return fmt.Errorf("%s: invalid [format].quotes %q (preserve|single|double)", path, c.Format.Quotes)
		}
	}
	if c.Format.TargetVersion != "" {
		if _, ok := format.ParseTargetVersion(c.Format.TargetVersion); !ok {
			return fmt.Errorf("%s: invalid [format].target-version %q (py311|py312)", path, c.Format.TargetVersion)
		}
	}
	if c.Format.LineWidth < 0 {
		return fmt.Errorf("%s: [format].line-width must be positive", path)
	}
	if c.Format.IndentWidth < 0 {
		return fmt.Errorf("%s: [format].indent-width must be positive", path)
	}
	return nil
}

// Options converts the manifest into formatter options. Unset fields
// keep the formatter defaults.
func (c Config) Options() format.Options {
	opts := format.Options{
		LineWidth:           c.Format.LineWidth,
		IndentWidth:         c.Format.IndentWidth,
		NormalizeHexEscapes: c.Format.NormalizeHexEscapes,
	}
	if q, ok := format.ParseQuoteStyle(c.Format.Quotes); ok {
		opts.Quotes = q
	}
	if v, ok := format.ParseTargetVersion(c.Format.TargetVersion); ok {
		opts.Target = v
	}
	return opts
}
