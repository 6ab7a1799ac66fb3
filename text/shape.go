package text

import (
	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/psykit"
	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
)

// Layout is a shaped single line of text.
type Layout struct {
	Font *Font
	Size float64

	// Glyphs are positioned relative to the origin of the line on the
	// baseline, in visual order.
	Glyphs []scene.Glyph

	Advance float64
	Ascent  float64
	Descent float64
}

// Width returns the horizontal advance of the line.
func (l Layout) Width() float64 { return l.Advance }

// Height returns the distance from ascent to descent.
func (l Layout) Height() float64 { return l.Ascent + l.Descent }

// Run returns the glyph run with its top-left corner at (x, y).
func (l Layout) Run(x, y float64) scene.GlyphRun {
	return scene.GlyphRun{
		Position: geometry.Pt(x, y+l.Ascent),
		Glyphs:   l.Glyphs,
		Font:     l.Font,
		Size:     l.Size,
	}
}

// Shape lays out s as a single line at size pixels per em. Mixed
// direction text is split into bidi runs that are shaped separately and
// placed in visual order.
func Shape(f *Font, s string, size float64) Layout {
	l := Layout{Font: f, Size: size}
	if f == nil || !(size > 0) {
		return l
	}
	if m, err := f.Metrics(size); err == nil {
		l.Ascent, l.Descent = m.Ascent, m.Descent
	}
	if s == "" {
		return l
	}

	face := gotext.NewFace(f.shape)
	var shaper shaping.HarfbuzzShaper
	for _, run := range visualRuns(s) {
		runes := []rune(run.text)
		out := shaper.Shape(shaping.Input{
			Text:      runes,
			RunStart:  0,
			RunEnd:    len(runes),
			Direction: run.dir,
			Face:      face,
			Size:      toFixed(size),
			Script:    detectScript(runes),
			Language:  language.NewLanguage("en"),
		})
		for _, g := range out.Glyphs {
			l.Glyphs = append(l.Glyphs, scene.Glyph{
				ID: uint32(g.GlyphID),
				X:  l.Advance + fromFixed(g.XOffset),
				Y:  -fromFixed(g.YOffset),
			})
			l.Advance += fromFixed(g.XAdvance)
		}
	}
	psykit.Logger().Debug("text: shaped", "runes", len(s), "glyphs", len(l.Glyphs), "advance", l.Advance)
	return l
}

type textRun struct {
	text string
	dir  di.Direction
}

// visualRuns splits s into directional runs in visual order.
func visualRuns(s string) []textRun {
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return []textRun{{text: s, dir: di.DirectionLTR}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []textRun{{text: s, dir: di.DirectionLTR}}
	}
	runs := make([]textRun, 0, ordering.NumRuns())
	for i := range ordering.NumRuns() {
		r := ordering.Run(i)
		dir := di.DirectionLTR
		if r.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		runs = append(runs, textRun{text: r.String(), dir: dir})
	}
	return runs
}

// detectScript returns the script of the first letter-like rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if sc := language.LookupScript(r); sc != language.Common && sc != language.Inherited {
			return sc
		}
	}
	return language.Latin
}
