// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "github.com/gogpu/psykit/scene"

// Pixel is a premultiplied RGBA color in [0, 1].
type Pixel [4]float32

// BlendFunc combines a premultiplied source with a premultiplied
// destination.
type BlendFunc func(s, d Pixel) Pixel

// GetBlendFunc returns the function for mode. Unknown modes fall back to
// source-over.
func GetBlendFunc(mode scene.BlendMode) BlendFunc {
	switch mode {
	case scene.DestinationOver:
		return blendDestinationOver
	case scene.SourceIn:
		return blendSourceIn
	case scene.DestinationIn:
		return blendDestinationIn
	case scene.SourceOut:
		return blendSourceOut
	case scene.DestinationOut:
		return blendDestinationOut
	case scene.SourceAtop:
		return blendSourceAtop
	case scene.DestinationAtop:
		return blendDestinationAtop
	case scene.Lighter:
		return blendLighter
	case scene.Copy:
		return blendCopy
	case scene.Xor:
		return blendXor
	case scene.Multiply:
		return blendMultiply
	case scene.Modulate:
		return blendModulate
	default:
		return blendSourceOver
	}
}

// Composite blends s onto d and weights the result by coverage c, so
// pixels outside the drawn shape keep their value.
func Composite(f BlendFunc, s, d Pixel, c float32) Pixel {
	if c <= 0 {
		return d
	}
	r := f(s, d)
	if c >= 1 {
		return r
	}
	ic := 1 - c
	return Pixel{
		r[0]*c + d[0]*ic,
		r[1]*c + d[1]*ic,
		r[2]*c + d[2]*ic,
		r[3]*c + d[3]*ic,
	}
}

// porterDuff computes s·fs + d·fd per channel.
func porterDuff(s, d Pixel, fs, fd float32) Pixel {
	return Pixel{
		s[0]*fs + d[0]*fd,
		s[1]*fs + d[1]*fd,
		s[2]*fs + d[2]*fd,
		s[3]*fs + d[3]*fd,
	}
}

// S + D*(1-Sa)
func blendSourceOver(s, d Pixel) Pixel { return porterDuff(s, d, 1, 1-s[3]) }

// S*(1-Da) + D
func blendDestinationOver(s, d Pixel) Pixel { return porterDuff(s, d, 1-d[3], 1) }

// S*Da
func blendSourceIn(s, d Pixel) Pixel { return porterDuff(s, d, d[3], 0) }

// D*Sa
func blendDestinationIn(s, d Pixel) Pixel { return porterDuff(s, d, 0, s[3]) }

// S*(1-Da)
func blendSourceOut(s, d Pixel) Pixel { return porterDuff(s, d, 1-d[3], 0) }

// D*(1-Sa)
func blendDestinationOut(s, d Pixel) Pixel { return porterDuff(s, d, 0, 1-s[3]) }

// S*Da + D*(1-Sa)
func blendSourceAtop(s, d Pixel) Pixel { return porterDuff(s, d, d[3], 1-s[3]) }

// S*(1-Da) + D*Sa
func blendDestinationAtop(s, d Pixel) Pixel { return porterDuff(s, d, 1-d[3], s[3]) }

// S*(1-Da) + D*(1-Sa)
func blendXor(s, d Pixel) Pixel { return porterDuff(s, d, 1-d[3], 1-s[3]) }

func blendCopy(s, _ Pixel) Pixel { return s }

// min(1, S + D)
func blendLighter(s, d Pixel) Pixel {
	return Pixel{
		min(1, s[0]+d[0]),
		min(1, s[1]+d[1]),
		min(1, s[2]+d[2]),
		min(1, s[3]+d[3]),
	}
}

// S*D on all channels.
func blendModulate(s, d Pixel) Pixel {
	return Pixel{s[0] * d[0], s[1] * d[1], s[2] * d[2], s[3] * d[3]}
}

// Separable multiply composited with source-over:
// Cs*Cd + Cs*(1-Da) + Cd*(1-Sa).
func blendMultiply(s, d Pixel) Pixel {
	isa, ida := 1-s[3], 1-d[3]
	return Pixel{
		s[0]*d[0] + s[0]*ida + d[0]*isa,
		s[1]*d[1] + s[1]*ida + d[1]*isa,
		s[2]*d[2] + s[2]*ida + d[2]*isa,
		s[3] + d[3]*isa,
	}
}
