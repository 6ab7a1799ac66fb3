package window

import (
	"time"

	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/units"
)

// State is the lifecycle state of a Frame.
type State uint8

const (
	// StateFresh is a frame with nothing drawn.
	StateFresh State = iota

	// StateAccumulating is a frame with at least one Draw call.
	StateAccumulating

	// StatePresented is a frame handed to Present. It is terminal.
	StatePresented
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateFresh:
		return "Fresh"
	case StateAccumulating:
		return "Accumulating"
	case StatePresented:
		return "Presented"
	default:
		return "State(?)"
	}
}

// Drawable is something a Frame can draw, usually a stimulus.
type Drawable interface {
	// UpdateAnimations advances animations to now.
	UpdateAnimations(now time.Time, ctx units.Context)

	// Draw records scene commands into the frame.
	Draw(f *Frame)
}

// Frame is one picture under construction. Frames are not safe for
// concurrent use.
type Frame struct {
	window      *Window
	scene       *scene.Scene
	ctx         units.Context
	time        time.Time
	state       State
	presentedAt time.Time
}

// Draw advances d's animations to the current time and lets it record
// into the frame's scene. It panics if the frame was presented.
func (f *Frame) Draw(d Drawable) {
	if f.state == StatePresented {
		panic("window: Draw on presented frame")
	}
	f.state = StateAccumulating
	d.UpdateAnimations(f.window.clock(), f.ctx)
	d.Draw(f)
}

// Scene returns the scene the frame records into.
func (f *Frame) Scene() *scene.Scene { return f.scene }

// Context returns the window size and physical screen captured when the
// frame was created. It does not change during the frame.
func (f *Frame) Context() units.Context { return f.ctx }

// Window returns the window the frame belongs to.
func (f *Frame) Window() *Window { return f.window }

// State returns the lifecycle state.
func (f *Frame) State() State { return f.state }

// Time returns when the frame was created.
func (f *Frame) Time() time.Time { return f.time }

// PresentedAt returns when the surface finished presenting the frame. It
// is zero until Present returns successfully.
func (f *Frame) PresentedAt() time.Time { return f.presentedAt }
