// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/psykit/geometry"
)

// Dash is an on/off dash pattern. An odd-length array is logically
// duplicated, so [5] behaves like [5, 5].
type Dash struct {
	Array  []float64
	Offset float64
}

// NewDash returns nil when the pattern has no positive length, which
// means a solid stroke. Negative lengths are taken as absolute values.
func NewDash(offset float64, lengths ...float64) *Dash {
	var total float64
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
		total += normalized[i]
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil
	}
	return &Dash{Array: normalized, Offset: offset}
}

// PatternLength returns the length of one full cycle.
func (d *Dash) PatternLength() float64 {
	if d == nil {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// Scale returns the pattern with all lengths multiplied by factor.
func (d *Dash) Scale(factor float64) *Dash {
	if d == nil || factor <= 0 {
		return d
	}
	scaled := make([]float64, len(d.Array))
	for i, l := range d.Array {
		scaled[i] = l * factor
	}
	return &Dash{Array: scaled, Offset: d.Offset * factor}
}

func (d *Dash) effectiveArray() []float64 {
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	result := make([]float64, len(d.Array)*2)
	copy(result, d.Array)
	copy(result[len(d.Array):], d.Array)
	return result
}

// Apply splits polylines into the "on" pieces of the pattern. Each
// subpath restarts the pattern at Offset. Closed subpaths are walked
// including their closing edge and produce open pieces.
func (d *Dash) Apply(subs []geometry.Subpath) []geometry.Subpath {
	if d == nil {
		return subs
	}
	pattern := d.effectiveArray()
	period := d.PatternLength()

	var out []geometry.Subpath
	for _, sp := range subs {
		pts := sp.Points
		if sp.Closed && len(pts) > 0 {
			pts = append(append([]geometry.Point(nil), pts...), pts[0])
		}

		// Locate the starting dash and the distance left in it.
		offset := math.Mod(d.Offset, period)
		if offset < 0 {
			offset += period
		}
		idx := 0
		for offset >= pattern[idx] {
			offset -= pattern[idx]
			idx = (idx + 1) % len(pattern)
		}
		left := pattern[idx] - offset
		on := idx%2 == 0

		var cur []geometry.Point
		if on && len(pts) > 0 {
			cur = []geometry.Point{pts[0]}
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := a.Distance(b)
			pos := 0.0
			for segLen-pos > left {
				pos += left
				p := a.Lerp(b, pos/segLen)
				if on {
					cur = append(cur, p)
					if len(cur) > 1 {
						out = append(out, geometry.Subpath{Points: cur})
					}
					cur = nil
				} else {
					cur = []geometry.Point{p}
				}
				on = !on
				idx = (idx + 1) % len(pattern)
				left = pattern[idx]
			}
			left -= segLen - pos
			if on {
				cur = append(cur, b)
			}
		}
		if on && len(cur) > 1 {
			out = append(out, geometry.Subpath{Points: cur})
		}
	}
	return out
}
