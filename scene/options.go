package scene

import "github.com/gogpu/psykit/geometry"

// Option configures a drawing or layer call.
type Option func(*options)

type options struct {
	transform      geometry.Matrix
	blend          BlendMode
	alpha          float32
	clipTransform  geometry.Matrix
	layerTransform geometry.Matrix
	sampling       ImageSampling
}

func defaultOptions() options {
	return options{
		transform:      geometry.IdentityMatrix(),
		blend:          SourceOver,
		alpha:          1,
		clipTransform:  geometry.IdentityMatrix(),
		layerTransform: geometry.IdentityMatrix(),
		sampling:       SamplingLinear,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTransform sets the user-to-layer transform of a drawing call.
func WithTransform(m geometry.Matrix) Option {
	return func(o *options) {
		o.transform = m
	}
}

// WithBlend sets the blend mode of a drawing call.
func WithBlend(mode BlendMode) Option {
	return func(o *options) {
		o.blend = mode
	}
}

// WithAlpha sets the opacity of a drawing call or layer.
func WithAlpha(alpha float32) Option {
	return func(o *options) {
		o.alpha = alpha
	}
}

// WithClipTransform sets the transform applied to a layer's clip shape.
func WithClipTransform(m geometry.Matrix) Option {
	return func(o *options) {
		o.clipTransform = m
	}
}

// WithLayerTransform sets a transform applied to everything drawn inside
// a layer.
func WithLayerTransform(m geometry.Matrix) Option {
	return func(o *options) {
		o.layerTransform = m
	}
}

// WithSampling sets the filter used by DrawImage.
func WithSampling(s ImageSampling) Option {
	return func(o *options) {
		o.sampling = s
	}
}
