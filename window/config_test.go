package window

import (
	"errors"
	"os"
	"testing"

	"github.com/gogpu/psykit/scene"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidScreen},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrInvalidScreen},
		{"missing density", func(c *Config) { c.PixelDensity = 0 }, ErrInvalidScreen},
		{"missing distance", func(c *Config) { c.ViewingDistance = 0 }, ErrInvalidScreen},
		{"bad background", func(c *Config) { c.Background = "grey" }, scene.ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PSYKIT_WIDTH", "800")
	t.Setenv("PSYKIT_HEIGHT", "600")
	t.Setenv("PSYKIT_PIXEL_DENSITY", "3.5")
	t.Setenv("PSYKIT_VIEWING_DISTANCE", "570")
	t.Setenv("PSYKIT_BACKEND", "software")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.PixelDensity != 3.5 || cfg.ViewingDistance != 570 {
		t.Errorf("screen = %+v, want density 3.5 distance 570", cfg.Screen())
	}
	if cfg.Backend != "software" {
		t.Errorf("Backend = %q, want software", cfg.Backend)
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		t.Fatal(err)
	}
	if want := scene.MustHex("#808080"); bg != want {
		t.Errorf("background = %v, want default %v", bg, want)
	}
}

func TestLoadConfigRequiresScreen(t *testing.T) {
	for _, key := range []string{"PSYKIT_PIXEL_DENSITY", "PSYKIT_VIEWING_DISTANCE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() without physical screen succeeded")
	}

	t.Setenv("PSYKIT_PIXEL_DENSITY", "-2")
	t.Setenv("PSYKIT_VIEWING_DISTANCE", "600")
	if _, err := LoadConfig(); !errors.Is(err, ErrInvalidScreen) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidScreen", err)
	}
}
