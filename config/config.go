package config

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/pagemark/pagemark/annotation"
)

// Config holds the session defaults a host or the shell can override.
type Config struct {
	// Style is the initial tool style; it is also the fallback the text
	// tool keeps when the font probe misses.
	Style annotation.Style `yaml:"style"`
	// Epsilon is the drag degeneracy threshold in document units.
	Epsilon float64 `yaml:"epsilon"`
	Export  struct {
		// Thumbnail writes a JPEG preview next to every exported artifact.
		Thumbnail bool `yaml:"thumbnail"`
	} `yaml:"export"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{Epsilon: 0.5}
	c.Style = annotation.Style{
		Color:       "#000000",
		StrokeWidth: 2,
		FontFamily:  "Helvetica",
		FontSize:    12,
	}
	return c
}

// Load reads a YAML config file over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, errors.Wrap(err, "failed to read config")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if c.Epsilon <= 0 {
		c.Epsilon = 0.5
	}
	return c, nil
}
