package layout

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FormatCode is the rune that introduces an in-text formatting code. The code
// rune that follows it is not rendered.
const FormatCode = '§'

// Metrics reports the rendered advance of a glyph in pixels.
type Metrics interface {
	Advance(r rune) int
}

// MinecraftMetrics holds the glyph advances of the proportional book font.
// Every advance includes the one pixel of spacing drawn after the glyph.
type MinecraftMetrics struct{}

// Advance returns the advance of r in pixels.
func (MinecraftMetrics) Advance(r rune) int {
	switch r {
	case '!', ',', '.', ':', ';', 'i', '|', '\'':
		return 2
	case 'l', '`':
		return 3
	case 'I', 't', '[', ']', ' ':
		return 4
	case 'f', 'k', '<', '>', '(', ')', '{', '}', '"', '*':
		return 5
	case '@', '~':
		return 7
	case '\n', '\r':
		return 0
	}
	return 6
}

// FaceMetrics adapts a font.Face to the Metrics interface. Advances are
// rounded to whole pixels.
type FaceMetrics struct {
	Face font.Face
}

// Advance returns the rounded advance of r, or zero when the face has no
// glyph for it.
func (m FaceMetrics) Advance(r rune) int {
	adv, ok := m.Face.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return adv.Round()
}

// CellMetrics measures text in terminal cells: one cell for most runes, two
// for East Asian wide runes and none for combining marks. Each cell is Cell
// pixels wide; zero means one.
type CellMetrics struct {
	Cell int
}

// Advance returns the width of r in cells times the cell width.
func (m CellMetrics) Advance(r rune) int {
	cell := m.Cell
	if cell <= 0 {
		cell = 1
	}
	return runewidth.RuneWidth(r) * cell
}

// GoRegular returns metrics for the Go Regular typeface at the given size in
// points, rendered at 72 DPI so that one point is one pixel.
func GoRegular(size float64) (FaceMetrics, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return FaceMetrics{}, fmt.Errorf("parsing Go Regular: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return FaceMetrics{}, fmt.Errorf("creating Go Regular face: %w", err)
	}
	return FaceMetrics{Face: face}, nil
}

// Width returns the rendered width of s. Formatting codes take no space and
// bold text (§l until §r) is one pixel wider per glyph.
func Width(m Metrics, s string) int {
	w := 0
	bold := false
	code := false
	for _, r := range s {
		if code {
			switch r {
			case 'l', 'L':
				bold = true
			case 'r', 'R':
				bold = false
			}
			code = false
			continue
		}
		if r == FormatCode {
			code = true
			continue
		}
		w += m.Advance(r)
		if bold && r != ' ' {
			w++
		}
	}
	return w
}
