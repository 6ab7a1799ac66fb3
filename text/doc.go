// Package text loads fonts and shapes strings into glyph runs for
// scene.DrawGlyphs.
//
// Shaping uses the HarfBuzz port from go-text/typesetting. Glyph outlines
// and metrics come from golang.org/x/image/font/sfnt. Mixed-direction
// strings are split into runs with golang.org/x/text/unicode/bidi and
// laid out in visual order.
package text
