// Package config holds runtime settings for a scan: defaults, derived
// policies, and the startup validation whose failures abort the run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"nerja/internal/classify"
	"nerja/internal/naming"
)

var (
	ErrSourceNotDir = errors.New("source path is not a directory")
	ErrTargetNotDir = errors.New("target path is not a directory")
)

// Config is populated by Default and then by the scan command's flags.
type Config struct {
	// Paths (positional args). An empty Target means report-only.
	Source string
	Target string

	// Classification.
	MinWidth  uint64  // Default: 1920.
	MinRatio  float64 // Default: 1.6.
	MaxRatio  float64 // Default: 2.7.
	RatioStep uint64  // Default: 0 (exact ratios).

	// Naming.
	HashNames bool

	// Output.
	LogFile    string
	Verbose    bool
	NoProgress bool
}

func Default() Config {
	p := classify.DefaultPolicy()
	return Config{
		MinWidth: p.MinWidth,
		MinRatio: p.MinRatio,
		MaxRatio: p.MaxRatio,
	}
}

func (c Config) Policy() classify.Policy {
	return classify.Policy{MinWidth: c.MinWidth, MinRatio: c.MinRatio, MaxRatio: c.MaxRatio}
}

func (c Config) NamingStrategy() naming.Strategy {
	if c.HashNames {
		return naming.ContentHash
	}
	return naming.Structural
}

// ReportOnly is true when no target directory was given.
func (c Config) ReportOnly() bool {
	return c.Target == ""
}

// Validate checks the paths and the ratio band, and makes both paths
// absolute. Errors here are fatal; nothing has been scanned yet.
func (c *Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return err
	}

	src, err := checkDir(c.Source, ErrSourceNotDir)
	if err != nil {
		return err
	}
	c.Source = src

	if c.Target == "" {
		return nil
	}
	dst, err := checkDir(c.Target, ErrTargetNotDir)
	if err != nil {
		return err
	}
	c.Target = dst
	return nil
}

func checkDir(path string, sentinel error) (string, error) {
	if path == "" {
		return "", sentinel
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", sentinel, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %q", sentinel, path)
	}
	return abs, nil
}
