package gallery

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the name of the optional settings file at the site root.
const ConfigFile = "gallery.cfg"

// Config contains configuration data from the gallery.cfg file.
type Config struct {
	Title        string            `toml:"title"`        // Page title
	Slugs        SlugMode          `toml:"slugs"`        // "lookup" or "legacy"
	PreviewWidth int               `toml:"previewwidth"` // Sidebar preview width in pixels
	Expires      Duration          `toml:"expires"`      // Expires header offset for pages
	Headers      map[string]string `toml:"headers"`      // Extra response headers
}

// LoadConfig reads the gallery.cfg file at the root of site.
// It is not an error if the file does not exist; an empty Config is returned.
func LoadConfig(site fs.FS) (*Config, error) {
	var cfg Config
	cfgBytes, err := fs.ReadFile(site, ConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("Cannot read config file: %w", err)
	}
	err = toml.Unmarshal(cfgBytes, &cfg)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse config file: %w", err)
	}
	return &cfg, nil
}

// Options converts the settings into options for New.
func (c *Config) Options() []Option {
	if c == nil {
		return nil
	}
	opts := []Option{WithSlugMode(c.Slugs)}
	if c.Title != "" {
		opts = append(opts, WithTitle(c.Title))
	}
	if c.PreviewWidth > 0 {
		opts = append(opts, WithPreviewWidth(c.PreviewWidth))
	}
	return opts
}
