package gallery

import (
	"testing"
	"testing/fstest"
	"time"
)

func TestLoadConfig(t *testing.T) {
	fsys := fstest.MapFS{
		ConfigFile: {Data: []byte(`
title = "Email templates"
slugs = "legacy"
previewwidth = 320
expires = "1m30s"

[headers]
X-Frame-Options = "SAMEORIGIN"
`)},
	}
	cfg, err := LoadConfig(fsys)
	if err != nil {
		t.Error(err)
		return
	}
	if cfg.Title != "Email templates" || cfg.Slugs != SlugLegacy || cfg.PreviewWidth != 320 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if time.Duration(cfg.Expires) != 90*time.Second {
		t.Errorf("Expected 1m30s but got %s", cfg.Expires)
	}
	if cfg.Headers["X-Frame-Options"] != "SAMEORIGIN" {
		t.Errorf("Unexpected headers %v", cfg.Headers)
	}
	if n := len(cfg.Options()); n != 3 {
		t.Errorf("Expected 3 options but got %d", n)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(fstest.MapFS{})
	if err != nil {
		t.Error(err)
		return
	}
	if cfg == nil || cfg.Slugs != SlugLookup || cfg.Title != "" {
		t.Errorf("Expected empty config but got %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, s := range []string{`slugs = "percent"`, `expires = "soon"`, `title = `} {
		_, err := LoadConfig(fstest.MapFS{ConfigFile: {Data: []byte(s)}})
		if err == nil {
			t.Errorf("Expected an error for %q", s)
		}
	}
}

func TestNilConfigOptions(t *testing.T) {
	var cfg *Config
	if opts := cfg.Options(); opts != nil {
		t.Errorf("Expected no options but got %d", len(opts))
	}
}
