package window

import (
	"errors"

	"github.com/gogpu/psykit/units"
)

var (
	// ErrClosed is returned by Present after the window was closed or
	// its render loop stopped on an unrecoverable error.
	ErrClosed = errors.New("window: closed")

	// ErrSurfaceLost is returned by a Surface whose target became
	// invalid, typically after a resize. The window reconfigures the
	// surface and retries once.
	ErrSurfaceLost = errors.New("window: surface lost")

	// ErrInvalidScreen reports missing or non-positive window or
	// physical screen configuration.
	ErrInvalidScreen = units.ErrInvalidScreen
)
