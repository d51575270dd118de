// Package config loads the per-project .inkwell.yml file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the project directory.
const FileName = ".inkwell.yml"

// DefaultListingURL lists the base16 schemes of the tinted-theming project.
const DefaultListingURL = "https://api.github.com/repos/tinted-theming/schemes/contents/base16?ref=spec-0.11"

// Config is the project configuration.
type Config struct {
	// Project is the project file, relative to the project directory.
	Project  string `yaml:"project"`
	Themes   Themes `yaml:"themes"`
	LogLevel string `yaml:"log_level"`
}

// Themes configures the themes sync command.
type Themes struct {
	Dir        string        `yaml:"dir"`
	ListingURL string        `yaml:"listing_url"`
	UserAgent  string        `yaml:"user_agent"`
	Delay      time.Duration `yaml:"delay"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Project: "project.json",
		Themes: Themes{
			Dir:        "themes",
			ListingURL: DefaultListingURL,
			UserAgent:  "stormlightlabs.org",
			Delay:      500 * time.Millisecond,
			Timeout:    30 * time.Second,
		},
		LogLevel: "warn",
	}
}

// Parse decodes data over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that the YAML types cannot.
func (c Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("%s: project must not be empty", FileName)
	}
	if filepath.IsAbs(c.Project) {
		return fmt.Errorf("%s: project must be relative, got %q", FileName, c.Project)
	}
	if c.Themes.Delay < 0 {
		return fmt.Errorf("%s: themes.delay must not be negative", FileName)
	}
	if c.Themes.Timeout < 0 {
		return fmt.Errorf("%s: themes.timeout must not be negative", FileName)
	}
	return nil
}

// Load reads FileName from dir through read, which defaults to os.ReadFile.
// A missing file yields Default().
func Load(dir string, read func(path string) ([]byte, error)) (Config, error) {
	if read == nil {
		read = os.ReadFile
	}
	data, err := read(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading %s: %w", FileName, err)
	}
	return Parse(data)
}

// Marshal encodes cfg with a leading comment line.
func Marshal(cfg Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", FileName, err)
	}
	return append([]byte("# inkwell project configuration\n"), body...), nil
}

// ProjectPath resolves the project file against dir.
func (c Config) ProjectPath(dir string) string {
	return filepath.Join(dir, c.Project)
}

// ThemesDir resolves the themes directory against dir.
func (c Config) ThemesDir(dir string) string {
	if filepath.IsAbs(c.Themes.Dir) {
		return c.Themes.Dir
	}
	return filepath.Join(dir, c.Themes.Dir)
}
