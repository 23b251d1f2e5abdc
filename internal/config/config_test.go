package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	cfg := GetDefaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d, want %d", cfg.Server.MaxBodyBytes, 1<<20)
	}
	if !cfg.Server.RateLimit.Enabled {
		t.Error("rate limiting should be enabled by default")
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled by default")
	}
	if cfg.Audit.Enabled {
		t.Error("audit should be disabled by default")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %s/%s, want info/json", cfg.Logging.Level, cfg.Logging.Format)
	}
	if err := validateConfig(cfg); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"rate limit without rate", func(c *Config) { c.Server.RateLimit.RequestsPerSecond = 0 }, true},
		{"disabled rate limit ignores rate", func(c *Config) {
			c.Server.RateLimit.Enabled = false
			c.Server.RateLimit.RequestsPerSecond = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateScrubber(t *testing.T) {
	tests := []struct {
		name     string
		scrubber ScrubberConfig
		wantErr  bool
	}{
		{"zero values use defaults", ScrubberConfig{}, false},
		{"explicit valid range", ScrubberConfig{MRNMinLength: 5, MRNMaxLength: 12}, false},
		{"min only", ScrubberConfig{MRNMinLength: 5}, false},
		{"negative min", ScrubberConfig{MRNMinLength: -1}, true},
		{"inverted range", ScrubberConfig{MRNMinLength: 10, MRNMaxLength: 6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateScrubber(&tt.scrubber)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateScrubber() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDictionary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dictionary.json")
	doc := `{
		"names": ["Zelda Fitzgerald", "Harmon"],
		"keywords": ["Acme Clinic"],
		"mrn_min_length": 5
	}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary() error = %v", err)
	}

	if len(sc.Names) != 2 || sc.Names[0] != "Zelda Fitzgerald" {
		t.Errorf("Names = %v, want the two configured names", sc.Names)
	}
	if len(sc.Keywords) != 1 || sc.Keywords[0] != "Acme Clinic" {
		t.Errorf("Keywords = %v, want [Acme Clinic]", sc.Keywords)
	}
	if sc.MRNMinLength != 5 {
		t.Errorf("MRNMinLength = %d, want 5", sc.MRNMinLength)
	}
	if sc.MRNMaxLength != 0 {
		t.Errorf("MRNMaxLength = %d, want 0 (engine default)", sc.MRNMaxLength)
	}
}

func TestLoadDictionaryEmptyPath(t *testing.T) {
	sc, err := LoadDictionary("")
	if err != nil {
		t.Fatalf("LoadDictionary(\"\") error = %v", err)
	}
	if len(sc.Names) != 0 || len(sc.Keywords) != 0 {
		t.Errorf("empty path should yield empty overrides, got %+v", sc)
	}
}

func TestLoadDictionaryInvalid(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadDictionary(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("bad range", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte(`{"mrn_min_length": 9, "mrn_max_length": 4}`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadDictionary(path); err == nil {
			t.Error("expected error for inverted MRN range")
		}
	})
}
