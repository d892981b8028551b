// Package poster lays out and renders specification posters.
//
// Layout is split from drawing: Geometry computes every box and
// coordinate as a pure function of the canvas size, and Compose only
// executes what Geometry dictates. That keeps the arithmetic testable
// without rasterizing anything.
package poster

import (
	"path/filepath"
	"strings"
)

// Canvas constants. The margin frames the whole poster; the header and
// spec columns hang off it.
const (
	margin       = 60
	borderInset  = 10
	headerInset  = 50
	panelInset   = 20
	specAreaH    = 320
	lineHeight   = 42
	columnGutter = 50

	brandSize = 64
	modelSize = 88
	labelSize = 26
	valueSize = 28

	flagWidth  = 36
	flagHeight = 24
)

// Geometry is the poster coordinate system for one canvas size.
type Geometry struct {
	Width  int
	Height int
}

// DefaultGeometry returns the standard portrait canvas.
func DefaultGeometry() Geometry {
	return Geometry{Width: 1200, Height: 1600}
}

// HeaderX is the left edge of the brand and model lines.
func (g Geometry) HeaderX() int { return margin + headerInset }

// HeaderY is the top edge of the brand line.
func (g Geometry) HeaderY() int { return margin + headerInset }

// SpecTop is the top edge of the spec column area.
func (g Geometry) SpecTop() int { return g.Height - margin - specAreaH }

// ImageTop is the top edge of the photo panel, below the model line.
func (g Geometry) ImageTop(modelBottom int) int { return modelBottom + 40 }

// ImageBottom is the bottom edge of the photo panel.
func (g Geometry) ImageBottom() int { return g.SpecTop() - 40 }

// PhotoBox returns the backdrop rectangle of the photo panel.
func (g Geometry) PhotoBox(modelBottom int) (x, y, w, h int) {
	x = margin + panelInset
	y = g.ImageTop(modelBottom)
	w = g.Width - 2*margin - 2*panelInset
	h = g.ImageBottom() - y
	return x, y, w, h
}

// ColumnWidth is the width of one spec column. Two gutters separate
// the three columns; leftover pixels from the division stay in the
// right gutter.
func (g Geometry) ColumnWidth() int {
	return (g.Width - 2*margin - 2*columnGutter) / 3
}

// ColumnX is the left edge of spec column i (0 to 2).
func (g Geometry) ColumnX(i int) int {
	return margin + i*(g.ColumnWidth()+columnGutter)
}

// FirstRowY is the top edge of the first spec row.
func (g Geometry) FirstRowY() int { return g.SpecTop() + 20 }

// RowY is the top edge of spec row i within a column.
func (g Geometry) RowY(i int) int { return g.FirstRowY() + i*lineHeight }

// FlagPos returns the top-left corner of the brand flag, right-aligned
// under the last row of the third column.
func (g Geometry) FlagPos(rows int) (x, y int) {
	x = g.ColumnX(2) + g.ColumnWidth() - flagWidth
	y = g.RowY(rows) + 12
	return x, y
}

// ScaleToFit returns the factor that fits an image of iw x ih into a
// box of bw x bh without upscaling.
func ScaleToFit(iw, ih, bw, bh int) float64 {
	if iw <= 0 || ih <= 0 || bw <= 0 || bh <= 0 {
		return 0
	}
	scale := min(float64(bw)/float64(iw), float64(bh)/float64(ih))
	return min(scale, 1.0)
}

// Format is a poster output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// FormatForPath picks the output format from a file extension.
// Anything that is not a JPEG extension encodes as PNG.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	default:
		return FormatPNG
	}
}
