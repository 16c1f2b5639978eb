package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Player.Skin != "default" {
			t.Errorf("expected default skin, got %s", config.Player.Skin)
		}

		if config.Player.DefaultVolume != 0.5 {
			t.Errorf("expected default volume 0.5, got %v", config.Player.DefaultVolume)
		}

		if config.Player.EndTolerance != 0.5 {
			t.Errorf("expected end tolerance 0.5, got %v", config.Player.EndTolerance)
		}

		if config.Player.PopoverDelay != 200*time.Millisecond {
			t.Errorf("expected popover delay 200ms, got %v", config.Player.PopoverDelay)
		}

		if config.Player.TickInterval != 250*time.Millisecond {
			t.Errorf("expected tick interval 250ms, got %v", config.Player.TickInterval)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("embedded config should validate, got %v", err)
		}
	})

	t.Run("Skins", func(t *testing.T) {
		config := DefaultConfig()

		tc := []struct {
			name  string
			cover string
		}{
			{"default", "songs/song-cover-photo-01.png"},
			{"dark", "songs/song-cover-photo-04.png"},
			{"minimal", "songs/song-cover-photo-10.png"},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				skin, err := config.Skin(tt.name)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if skin.FallbackCover != tt.cover {
					t.Errorf("expected fallback cover %s, got %s", tt.cover, skin.FallbackCover)
				}
			})
		}

		minimal, _ := config.Skin("minimal")
		if !minimal.Omits("shuffle") || !minimal.Omits("volume") {
			t.Errorf("expected minimal skin to omit shuffle and volume, got %v", minimal.Omit)
		}
		if minimal.Omits("playlist") {
			t.Error("minimal skin should keep the playlist")
		}

		if _, err := config.Skin("neon"); !errors.Is(err, ErrUnknownSkin) {
			t.Errorf("expected ErrUnknownSkin, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Discovery.Workers != defaultConfig.Discovery.Workers {
			t.Errorf("created config discovery workers doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[player]
skin = "dark"
default_volume = 0.8
end_tolerance = 1.0
tick_interval = "100ms"
popover_delay = "300ms"

[discovery]
workers = 2
rate_limit = 5.0

[skins.dark]
fallback_cover = "covers/dark.png"
accent = "#000000"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Player.Skin != "dark" {
			t.Errorf("expected skin dark, got %s", config.Player.Skin)
		}

		if config.Player.TickInterval != 100*time.Millisecond {
			t.Errorf("expected tick interval 100ms, got %v", config.Player.TickInterval)
		}

		if config.Discovery.Workers != 2 {
			t.Errorf("expected 2 workers, got %d", config.Discovery.Workers)
		}

		dark, _ := config.Skin("dark")
		if dark.FallbackCover != "covers/dark.png" {
			t.Errorf("expected overridden dark cover, got %s", dark.FallbackCover)
		}

		if _, err := config.Skin("minimal"); err != nil {
			t.Errorf("skins missing from the file should keep their defaults: %v", err)
		}
	})

	t.Run("LoadConfig rejects out of range values", func(t *testing.T) {
		tc := []struct {
			name   string
			config string
		}{
			{"volume above one", "[player]\ndefault_volume = 1.5\n"},
			{"negative tolerance", "[player]\nend_tolerance = -1.0\n"},
			{"unknown skin", "[player]\nskin = \"neon\"\n"},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(path, []byte(tt.config), 0644); err != nil {
					t.Fatalf("failed to write config: %v", err)
				}
				if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
