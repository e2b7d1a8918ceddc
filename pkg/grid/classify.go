package grid

import (
	"errors"
	"fmt"
)

// Classification errors.
var (
	ErrBadProfile = errors.New("grid: layer profile heights must stack monotonically above the floor")
)

// Class is a discrete height tier assigned to a grid cell.
type Class uint8

// Height classes, ordered by stacking height.
const (
	ClassBase   Class = 0 // background, base plate only
	ClassModule Class = 1 // QR module, raised above the base
	ClassFrame  Class = 2 // decorative frame, its own tier
)

// String returns a human-readable class name.
func (c Class) String() string {
	switch c {
	case ClassBase:
		return "base"
	case ClassModule:
		return "module"
	case ClassFrame:
		return "frame"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// LayerProfile maps each height class to its top Z. Every class
// occupies the interval [Floor, Top(class)]; tops must stack in
// declaration order. All values are millimeters.
type LayerProfile struct {
	Floor     float64
	BaseTop   float64
	ModuleTop float64
	FrameTop  float64
}

// Top returns the top Z for the given class.
func (p LayerProfile) Top(c Class) float64 {
	switch c {
	case ClassModule:
		return p.ModuleTop
	case ClassFrame:
		return p.FrameTop
	default:
		return p.BaseTop
	}
}

// Validate checks that the profile describes a printable stack:
// a positive base slab and non-decreasing tier tops.
func (p LayerProfile) Validate() error {
	if !(p.Floor < p.BaseTop) {
		return fmt.Errorf("%w: floor %.3f, base top %.3f", ErrBadProfile, p.Floor, p.BaseTop)
	}
	if p.ModuleTop < p.BaseTop || p.FrameTop < p.ModuleTop {
		return fmt.Errorf("%w: base %.3f, module %.3f, frame %.3f",
			ErrBadProfile, p.BaseTop, p.ModuleTop, p.FrameTop)
	}
	return nil
}

// ClassGrid is a grid of height classes, same shape as the Grid it was
// classified from.
type ClassGrid struct {
	width  int
	height int
	cells  []Class
}

// Width returns the number of columns.
func (cg *ClassGrid) Width() int { return cg.width }

// Height returns the number of rows.
func (cg *ClassGrid) Height() int { return cg.height }

// At returns the class of the cell at (x, y).
func (cg *ClassGrid) At(x, y int) Class {
	return cg.cells[y*cg.width+x]
}

// Set assigns the class of the cell at (x, y).
func (cg *ClassGrid) Set(x, y int, c Class) {
	cg.cells[y*cg.width+x] = c
}

// NewClassGrid creates an all-base ClassGrid of the given dimensions.
func NewClassGrid(width, height int) (*ClassGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	return &ClassGrid{
		width:  width,
		height: height,
		cells:  make([]Class, width*height),
	}, nil
}

// Cell addresses a single grid cell.
type Cell struct {
	X, Y int
}

// ClassifyOptions control how pixel values map to height classes.
type ClassifyOptions struct {
	// Invert swaps the ink/background interpretation before
	// classification.
	Invert bool

	// DetectFrame runs a 4-connected component analysis over ink
	// cells: every component with at least one cell on the grid
	// border is classified ClassFrame in full.
	DetectFrame bool

	// FrameCells explicitly marks cells as frame, bypassing
	// detection for the listed cells. Out-of-range cells are
	// ignored.
	FrameCells []Cell
}

// Classify maps a pixel grid to a height-class grid. Ink cells become
// ClassModule, background ClassBase, and frame cells (detected or
// hinted) ClassFrame. An all-background grid classifies to all
// ClassBase; it is never an error.
func Classify(g *Grid, opts ClassifyOptions) (*ClassGrid, error) {
	if g == nil || g.width <= 0 || g.height <= 0 {
		return nil, ErrEmptyGrid
	}

	cg, err := NewClassGrid(g.width, g.height)
	if err != nil {
		return nil, err
	}

	ink := func(x, y int) bool {
		v := g.InkAt(x, y)
		if opts.Invert {
			return !v
		}
		return v
	}

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if ink(x, y) {
				cg.Set(x, y, ClassModule)
			}
		}
	}

	if len(opts.FrameCells) > 0 {
		for _, c := range opts.FrameCells {
			if c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height {
				cg.Set(c.X, c.Y, ClassFrame)
			}
		}
		return cg, nil
	}

	if opts.DetectFrame {
		markBorderComponents(cg)
	}
	return cg, nil
}

// markBorderComponents promotes every 4-connected ClassModule
// component that touches the grid border to ClassFrame. Components
// partition the ink cells, so no cell is ever claimed twice.
func markBorderComponents(cg *ClassGrid) {
	visited := make([]bool, len(cg.cells))
	var component []int
	var queue []int

	onBorder := func(idx int) bool {
		x, y := idx%cg.width, idx/cg.width
		return x == 0 || x == cg.width-1 || y == 0 || y == cg.height-1
	}

	for start := range cg.cells {
		if visited[start] || cg.cells[start] != ClassModule {
			continue
		}

		// Flood-fill one component, tracking border contact.
		component = component[:0]
		queue = append(queue[:0], start)
		visited[start] = true
		touchesBorder := false

		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			component = append(component, idx)
			if onBorder(idx) {
				touchesBorder = true
			}

			x, y := idx%cg.width, idx/cg.width
			neighbors := [4]Cell{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
			for _, n := range neighbors {
				if n.X < 0 || n.X >= cg.width || n.Y < 0 || n.Y >= cg.height {
					continue
				}
				nIdx := n.Y*cg.width + n.X
				if !visited[nIdx] && cg.cells[nIdx] == ClassModule {
					visited[nIdx] = true
					queue = append(queue, nIdx)
				}
			}
		}

		if touchesBorder {
			for _, idx := range component {
				cg.cells[idx] = ClassFrame
			}
		}
	}
}
