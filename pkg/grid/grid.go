// Package grid provides the 2D pixel grid model and the height-class
// classification that turns a QR bitmap into input for mesh generation.
package grid

import (
	"errors"
	"image"
	"image/color"
)

// Grid errors.
var (
	ErrEmptyGrid  = errors.New("grid: empty grid")
	ErrRaggedGrid = errors.New("grid: rows have unequal lengths")
)

// Ink is the cell value representing a dark (ink) pixel.
const Ink uint8 = 1

// Grid is a rectangular 2D pixel grid. Value 0 is background, any
// non-zero value is ink. Cells are stored row-major.
type Grid struct {
	width  int
	height int
	cells  []uint8
}

// New creates a Grid of the given dimensions with all cells background.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}, nil
}

// FromRows builds a Grid from row-major cell values. All rows must
// have the same non-zero length.
func FromRows(rows [][]uint8) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(rows[0])
	g, err := New(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, ErrRaggedGrid
		}
		copy(g.cells[y*width:(y+1)*width], row)
	}
	return g, nil
}

// FromBitmap builds a Grid from a boolean bitmap where true means ink.
func FromBitmap(rows [][]bool) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(rows[0])
	g, err := New(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, ErrRaggedGrid
		}
		for x, set := range row {
			if set {
				g.cells[y*width+x] = Ink
			}
		}
	}
	return g, nil
}

// FromImage converts an image to a Grid by grayscale thresholding.
// Pixels darker than threshold become ink.
func FromImage(img image.Image, threshold uint8) (*Grid, error) {
	bounds := img.Bounds()
	g, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			if c.Y < threshold {
				g.cells[y*g.width+x] = Ink
			}
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the value of the cell at (x, y).
func (g *Grid) At(x, y int) uint8 {
	return g.cells[y*g.width+x]
}

// Set assigns the value of the cell at (x, y).
func (g *Grid) Set(x, y int, v uint8) {
	g.cells[y*g.width+x] = v
}

// InkAt reports whether the cell at (x, y) is ink.
func (g *Grid) InkAt(x, y int) bool {
	return g.cells[y*g.width+x] != 0
}

// FlipVertical returns a copy of the grid with rows in reverse order.
// Image row 0 is the top of the picture but mesh Y grows upward, so
// grids are flipped once before meshing.
func (g *Grid) FlipVertical() *Grid {
	out := &Grid{width: g.width, height: g.height, cells: make([]uint8, len(g.cells))}
	for y := 0; y < g.height; y++ {
		src := g.cells[y*g.width : (y+1)*g.width]
		copy(out.cells[(g.height-1-y)*g.width:], src)
	}
	return out
}

// AddFrame returns an enlarged copy of the grid with an ink border ring
// of the given thickness, separated from the original content by a
// background gap. Thickness and gap are in cells.
func (g *Grid) AddFrame(thickness, gap int) *Grid {
	if thickness <= 0 {
		return g.clone()
	}
	if gap < 0 {
		gap = 0
	}
	pad := thickness + gap
	out := &Grid{
		width:  g.width + 2*pad,
		height: g.height + 2*pad,
	}
	out.cells = make([]uint8, out.width*out.height)

	// Border ring.
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			onRing := x < thickness || x >= out.width-thickness ||
				y < thickness || y >= out.height-thickness
			if onRing {
				out.cells[y*out.width+x] = Ink
			}
		}
	}

	// Original content, offset past the ring and gap.
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			out.cells[(y+pad)*out.width+(x+pad)] = g.cells[y*g.width+x]
		}
	}
	return out
}

func (g *Grid) clone() *Grid {
	out := &Grid{width: g.width, height: g.height, cells: make([]uint8, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// CountInk returns the number of ink cells.
func (g *Grid) CountInk() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}
