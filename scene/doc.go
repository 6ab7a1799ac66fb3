// Package scene records backend-agnostic drawing commands for one frame.
//
// A Scene is created by a renderer sized to the target, filled by
// stimuli through FillShape, StrokeShape, DrawGlyphs, DrawImage and
// StartLayer/EndLayer, and consumed exactly once by the renderer. Commands
// are kept in issue order; later commands composite over earlier ones.
//
// Layers nest with stack discipline. The transform given to StartLayer
// with WithLayerTransform applies to everything drawn inside the layer,
// and recorded commands carry their fully composed transform.
package scene
