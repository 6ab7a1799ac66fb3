package text

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/internal/cache"
)

// outlineCacheSize bounds the number of cached glyph outlines per font.
const outlineCacheSize = 1024

type outlineKey struct {
	id   uint32
	size float64
}

// ErrInvalidFont is returned when font data cannot be parsed.
var ErrInvalidFont = errors.New("text: invalid font")

// Font is a parsed TrueType or OpenType font. It is safe for concurrent
// use.
type Font struct {
	name  string
	data  []byte
	shape *gotext.Font
	sfnt  *sfnt.Font

	// mu guards buf; sfnt.Buffer is not safe for concurrent use.
	mu  sync.Mutex
	buf sfnt.Buffer

	outlines *cache.Cache[outlineKey, *geometry.Path]
}

// Metrics are vertical font metrics in pixels. Descent is positive below
// the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// ParseFont parses font data. The data is retained and must not be
// modified afterwards.
func ParseFont(data []byte) (*Font, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	f := &Font{
		data:     data,
		shape:    face.Font,
		sfnt:     sf,
		outlines: cache.New[outlineKey, *geometry.Path](outlineCacheSize),
	}
	if name, err := sf.Name(&f.buf, sfnt.NameIDFull); err == nil {
		f.name = name
	}
	return f, nil
}

var (
	defaultOnce sync.Once
	defaultFont *Font
)

// DefaultFont returns Go Regular.
func DefaultFont() *Font {
	defaultOnce.Do(func() {
		f, err := ParseFont(goregular.TTF)
		if err != nil {
			panic("text: parse embedded Go Regular: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// Name returns the full font name, or "" if the font has none.
func (f *Font) Name() string { return f.name }

// Metrics returns the vertical metrics at size pixels per em.
func (f *Font) Metrics(size float64) (Metrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.sfnt.Metrics(&f.buf, toFixed(size), xfont.HintingNone)
	if err != nil {
		return Metrics{}, fmt.Errorf("text: metrics: %w", err)
	}
	return Metrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
		LineGap: fromFixed(m.Height - m.Ascent - m.Descent),
	}, nil
}

// GlyphOutline returns the outline of glyph id at size pixels per em,
// y down, relative to the glyph origin on the baseline. Outlines are
// cached and shared between callers; the returned path must not be
// modified.
func (f *Font) GlyphOutline(id uint32, size float64) (*geometry.Path, error) {
	key := outlineKey{id: id, size: size}
	if p, ok := f.outlines.Get(key); ok {
		return p, nil
	}
	p, err := f.loadOutline(id, size)
	if err != nil {
		return nil, err
	}
	f.outlines.Set(key, p)
	return p, nil
}

func (f *Font) loadOutline(id uint32, size float64) (*geometry.Path, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	segments, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(id), toFixed(size), nil)
	if err != nil {
		return nil, fmt.Errorf("text: glyph %d: %w", id, err)
	}

	path := geometry.NewPath()
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if path.HasCurrentPoint() {
				path.Close()
			}
			path.MoveTo(fromFixed(seg.Args[0].X), fromFixed(seg.Args[0].Y))
		case sfnt.SegmentOpLineTo:
			path.LineTo(fromFixed(seg.Args[0].X), fromFixed(seg.Args[0].Y))
		case sfnt.SegmentOpQuadTo:
			path.QuadTo(
				fromFixed(seg.Args[0].X), fromFixed(seg.Args[0].Y),
				fromFixed(seg.Args[1].X), fromFixed(seg.Args[1].Y),
			)
		case sfnt.SegmentOpCubeTo:
			path.CubicTo(
				fromFixed(seg.Args[0].X), fromFixed(seg.Args[0].Y),
				fromFixed(seg.Args[1].X), fromFixed(seg.Args[1].Y),
				fromFixed(seg.Args[2].X), fromFixed(seg.Args[2].Y),
			)
		}
	}
	if path.HasCurrentPoint() {
		path.Close()
	}
	return path, nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
