package window

import (
	"time"

	"github.com/gogpu/psykit/scene"
)

// Option configures a Window.
type Option func(*options)

type options struct {
	clock      func() time.Time
	background *scene.Color
}

func defaultOptions() options {
	return options{clock: time.Now}
}

// WithClock sets the time source used for frame timestamps and
// animations. The default is time.Now.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithBackground overrides the configured background color.
func WithBackground(c scene.Color) Option {
	return func(o *options) {
		o.background = &c
	}
}
