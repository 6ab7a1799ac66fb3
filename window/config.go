package window

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/units"
)

// Config describes the display a window draws to.
//
// PixelDensity and ViewingDistance have no defaults: visual angle units
// are meaningless without them.
type Config struct {
	Width  int `envconfig:"WIDTH" default:"1920"`
	Height int `envconfig:"HEIGHT" default:"1080"`

	// PixelDensity is the number of pixels per millimeter.
	PixelDensity float64 `envconfig:"PIXEL_DENSITY" required:"true"`

	// ViewingDistance is the eye to screen distance in millimeters.
	ViewingDistance float64 `envconfig:"VIEWING_DISTANCE" required:"true"`

	// Backend names a render backend. Empty selects the best available.
	Backend string `envconfig:"BACKEND"`

	// Background is the clear color as #rrggbb or #rrggbbaa.
	Background string `envconfig:"BACKGROUND" default:"#808080"`
}

// LoadConfig reads the configuration from PSYKIT_WIDTH, PSYKIT_HEIGHT,
// PSYKIT_PIXEL_DENSITY, PSYKIT_VIEWING_DISTANCE, PSYKIT_BACKEND and
// PSYKIT_BACKGROUND, then validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("psykit", &cfg); err != nil {
		return Config{}, fmt.Errorf("window: load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Size returns the window size in pixels.
func (c Config) Size() units.PixelSize {
	return units.PixelSize{Width: c.Width, Height: c.Height}
}

// Screen returns the physical screen parameters.
func (c Config) Screen() units.PhysicalScreen {
	return units.PhysicalScreen{PixelDensity: c.PixelDensity, ViewingDistance: c.ViewingDistance}
}

// BackgroundColor parses Background. An empty value is opaque black.
func (c Config) BackgroundColor() (scene.Color, error) {
	if c.Background == "" {
		return scene.Black, nil
	}
	col, err := scene.ParseHex(c.Background)
	if err != nil {
		return scene.Color{}, fmt.Errorf("window: background: %w", err)
	}
	return col, nil
}

// Validate reports ErrInvalidScreen for a non-positive window size or
// physical screen, and an error for an unparsable background.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidScreen, c.Width, c.Height)
	}
	if err := c.Screen().Validate(); err != nil {
		return err
	}
	_, err := c.BackgroundColor()
	return err
}
