package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"

	"ecgview/internal/drawing"
	"ecgview/internal/geom"
)

func TestBrailleSetPixel(t *testing.T) {
	b := newBrailleBuf(2, 1, plotBg)
	b.setPixel(0, 0, "#ffffff")
	b.setPixel(3, 3, "#ff0000")
	b.setPixel(4, 0, "#ff0000") // past the right edge
	b.setPixel(-1, 0, "#ff0000")

	assert.Equal(t, uint8(0x01), b.cells[0][0].mask)
	assert.Equal(t, "#ffffff", b.cells[0][0].fg)
	assert.Equal(t, uint8(0x80), b.cells[0][1].mask)
	assert.Equal(t, rune(0x2801), b.cells[0][0].glyph())
	assert.Equal(t, ' ', brailleCell{}.glyph())
}

func TestBrailleClip(t *testing.T) {
	b := newBrailleBuf(2, 1, plotBg)
	b.Clip(rect.Rect{URx: 2, URy: 4})
	b.setPixel(1, 1, "")
	b.setPixel(2, 1, "")
	assert.NotZero(t, b.cells[0][0].mask)
	assert.Zero(t, b.cells[0][1].mask)

	// a clip larger than the buffer is cut to it
	b.Clip(rect.Rect{LLx: -10, LLy: -10, URx: 100, URy: 100})
	assert.Equal(t, b.bounds(), b.clip)
}

func TestBrailleStroke(t *testing.T) {
	b := newBrailleBuf(3, 1, plotBg)
	p := geom.StrokePath(geom.ScaleTranslate(1, 1, 0, 0), []geom.Point{geom.Pt(0, 1), geom.Pt(3, 1)})
	b.Stroke(p, drawing.Style{Stroke: "#00ff00"})

	assert.Equal(t, uint8(0x12), b.cells[0][0].mask)
	assert.Equal(t, uint8(0x12), b.cells[0][1].mask)
	assert.Zero(t, b.cells[0][2].mask)
	assert.Equal(t, "#00ff00", b.cells[0][0].fg)
}

func TestBrailleStrokeOutsideClip(t *testing.T) {
	b := newBrailleBuf(3, 1, plotBg)
	b.Clip(rect.Rect{LLx: 2, URx: 6, URy: 4})
	p := geom.StrokePath(geom.ScaleTranslate(1, 1, 0, 0), []geom.Point{geom.Pt(-5, 0), geom.Pt(1, 3)})
	b.Stroke(p, drawing.Style{Stroke: "#00ff00"})
	for _, c := range b.cells[0] {
		assert.Zero(t, c.mask)
	}
}

func TestBrailleFillBlends(t *testing.T) {
	b := newBrailleBuf(3, 1, plotBg)
	b.Fill(geom.NewRect(0, 0, 4, 4), drawing.Style{Fill: "#ffffff", Opacity: 0.5})

	got := b.cells[0][0].bg
	require.NotEmpty(t, got)
	assert.NotEqual(t, plotBg, got)
	assert.NotEqual(t, "#ffffff", got)
	assert.Equal(t, got, b.cells[0][1].bg)
	assert.Empty(t, b.cells[0][2].bg)

	// no fill colour leaves the cells alone
	b.Fill(geom.NewRect(4, 0, 2, 4), drawing.Style{})
	assert.Empty(t, b.cells[0][2].bg)
}

func TestBrailleMarkerAndText(t *testing.T) {
	b := newBrailleBuf(4, 2, plotBg)
	b.Marker(geom.Pt(1, 5), drawing.Style{Fill: "#ff0000", Radius: 1})
	assert.Equal(t, uint8(0x3f), b.cells[1][0].mask)
	assert.Equal(t, uint8(0x07), b.cells[1][1].mask)
	assert.Equal(t, "#ff0000", b.cells[1][0].fg)

	b.Text(geom.Pt(2, 0), "abcd", drawing.Style{Stroke: "#cccccc"})
	assert.Equal(t, ' ', b.cells[0][0].glyph())
	assert.Equal(t, 'a', b.cells[0][1].glyph())
	assert.Equal(t, 'c', b.cells[0][3].glyph())
}

func TestBrailleInkOpacity(t *testing.T) {
	b := newBrailleBuf(1, 1, plotBg)
	assert.Equal(t, "#ff0000", b.ink("#ff0000", drawing.Style{}))
	faded := b.ink("#ff0000", drawing.Style{Opacity: 0.3})
	assert.NotEqual(t, "#ff0000", faded)
	assert.Empty(t, b.ink("", drawing.Style{}))
	assert.Equal(t, "nope", blend(plotBg, "nope", 0.5))
}

func TestBrailleToLinesWidth(t *testing.T) {
	b := newBrailleBuf(6, 3, plotBg)
	b.drawLineMicro(0, 0, 11, 11, "#ffffff")
	b.Text(geom.Pt(0, 8), "II", drawing.Style{Stroke: "#cccccc"})
	lines := b.toLines()
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 6, lipgloss.Width(l))
	}
}
