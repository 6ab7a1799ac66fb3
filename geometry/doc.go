// Package geometry resolves deferred transforms and shapes into pixel-space
// primitives.
//
// Transformation2D and the Size-based shape descriptors are evaluated
// against a units.Context at draw time. The result is a Matrix (2x3 affine
// acting on column vectors) and a Primitive that a scene or renderer can
// consume directly, or that Tessellate turns into a triangle list.
//
// Transform order: Product{A, B} evaluates to A·B, so B is applied to a
// point first and A last.
package geometry
