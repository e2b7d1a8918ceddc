package mesh

import (
	"github.com/Faultbox/qrforge/pkg/grid"
)

// SurfaceBuilder emits only the visible surface of the height field:
// merged top rectangles per height class, vertical walls where
// adjacent cells disagree in height, perimeter walls, and one bottom
// quad. A flat grid degenerates to a plain box under the same rules.
// This is the single-material strategy: fewest triangles that still
// enclose the solid.
type SurfaceBuilder struct{}

// Build generates the surface mesh for the classified grid.
// Tops are tagged by their class, vertical faces TagWall, and the
// bottom TagBase.
func (SurfaceBuilder) Build(cg *grid.ClassGrid, profile grid.LayerProfile, cellSize float64) (*Mesh, *ComponentMap, error) {
	if err := validateBuildInput(cg, profile, cellSize); err != nil {
		return nil, nil, err
	}

	m := &Mesh{}
	comps := &ComponentMap{}
	width, height := cg.Width(), cg.Height()
	floor := profile.Floor

	// Top surfaces: one quad per greedy same-class rectangle.
	for _, r := range greedyRects(cg, func(grid.Class) bool { return true }) {
		x0, y0 := float64(r.x)*cellSize, float64(r.y)*cellSize
		x1, y1 := float64(r.x+r.w)*cellSize, float64(r.y+r.h)*cellSize
		z := profile.Top(r.class)

		start := len(m.Triangles)
		m.AddQuad(Vec3{x0, y0, z}, Vec3{x1, y0, z}, Vec3{x1, y1, z}, Vec3{x0, y1, z})
		comps.Record(tagForClass(r.class), start, len(m.Triangles))
	}

	wallStart := len(m.Triangles)

	// Internal walls along vertical cell boundaries (between columns
	// x and x+1). Runs with an unchanged class pair merge into one
	// quad; the wall spans the gap between the two tops and faces the
	// lower cell.
	for x := 0; x < width-1; x++ {
		planeX := float64(x+1) * cellSize
		for y := 0; y < height; {
			left, right := cg.At(x, y), cg.At(x+1, y)
			if left == right {
				y++
				continue
			}
			runStart := y
			for y < height && cg.At(x, y) == left && cg.At(x+1, y) == right {
				y++
			}
			zl, zr := profile.Top(left), profile.Top(right)
			if zl == zr {
				continue
			}
			y0, y1 := float64(runStart)*cellSize, float64(y)*cellSize
			zLo, zHi := zl, zr
			if zLo > zHi {
				zLo, zHi = zHi, zLo
			}
			if zl > zr {
				// Left cell is higher; the wall faces +X.
				m.AddQuad(Vec3{planeX, y0, zLo}, Vec3{planeX, y1, zLo}, Vec3{planeX, y1, zHi}, Vec3{planeX, y0, zHi})
			} else {
				m.AddQuad(Vec3{planeX, y0, zLo}, Vec3{planeX, y0, zHi}, Vec3{planeX, y1, zHi}, Vec3{planeX, y1, zLo})
			}
		}
	}

	// Internal walls along horizontal cell boundaries (between rows
	// y and y+1).
	for y := 0; y < height-1; y++ {
		planeY := float64(y+1) * cellSize
		for x := 0; x < width; {
			near, far := cg.At(x, y), cg.At(x, y+1)
			if near == far {
				x++
				continue
			}
			runStart := x
			for x < width && cg.At(x, y) == near && cg.At(x, y+1) == far {
				x++
			}
			zn, zf := profile.Top(near), profile.Top(far)
			if zn == zf {
				continue
			}
			x0, x1 := float64(runStart)*cellSize, float64(x)*cellSize
			zLo, zHi := zn, zf
			if zLo > zHi {
				zLo, zHi = zHi, zLo
			}
			if zn > zf {
				// Near cell is higher; the wall faces +Y.
				m.AddQuad(Vec3{x0, planeY, zLo}, Vec3{x0, planeY, zHi}, Vec3{x1, planeY, zHi}, Vec3{x1, planeY, zLo})
			} else {
				m.AddQuad(Vec3{x0, planeY, zLo}, Vec3{x1, planeY, zLo}, Vec3{x1, planeY, zHi}, Vec3{x0, planeY, zHi})
			}
		}
	}

	// Perimeter walls, merged per run of equal class, floor to top.
	totalW := float64(width) * cellSize
	totalH := float64(height) * cellSize

	// South edge (y = 0), facing -Y.
	forEachRun(width, func(x int) grid.Class { return cg.At(x, 0) }, func(x0c, x1c int, c grid.Class) {
		x0, x1, z := float64(x0c)*cellSize, float64(x1c)*cellSize, profile.Top(c)
		m.AddQuad(Vec3{x0, 0, floor}, Vec3{x1, 0, floor}, Vec3{x1, 0, z}, Vec3{x0, 0, z})
	})
	// North edge (y = height-1), facing +Y.
	forEachRun(width, func(x int) grid.Class { return cg.At(x, height-1) }, func(x0c, x1c int, c grid.Class) {
		x0, x1, z := float64(x0c)*cellSize, float64(x1c)*cellSize, profile.Top(c)
		m.AddQuad(Vec3{x0, totalH, floor}, Vec3{x0, totalH, z}, Vec3{x1, totalH, z}, Vec3{x1, totalH, floor})
	})
	// West edge (x = 0), facing -X.
	forEachRun(height, func(y int) grid.Class { return cg.At(0, y) }, func(y0c, y1c int, c grid.Class) {
		y0, y1, z := float64(y0c)*cellSize, float64(y1c)*cellSize, profile.Top(c)
		m.AddQuad(Vec3{0, y0, floor}, Vec3{0, y0, z}, Vec3{0, y1, z}, Vec3{0, y1, floor})
	})
	// East edge (x = width-1), facing +X.
	forEachRun(height, func(y int) grid.Class { return cg.At(width-1, y) }, func(y0c, y1c int, c grid.Class) {
		y0, y1, z := float64(y0c)*cellSize, float64(y1c)*cellSize, profile.Top(c)
		m.AddQuad(Vec3{totalW, y0, floor}, Vec3{totalW, y1, floor}, Vec3{totalW, y1, z}, Vec3{totalW, y0, z})
	})

	comps.Record(TagWall, wallStart, len(m.Triangles))

	// One bottom quad for the whole footprint, facing -Z.
	bottomStart := len(m.Triangles)
	m.AddQuad(Vec3{0, 0, floor}, Vec3{0, totalH, floor}, Vec3{totalW, totalH, floor}, Vec3{totalW, 0, floor})
	comps.Record(TagBase, bottomStart, len(m.Triangles))

	return m, comps, nil
}

// forEachRun invokes fn for every maximal run [start, end) of equal
// classes along a perimeter edge of length n.
func forEachRun(n int, classAt func(int) grid.Class, fn func(start, end int, c grid.Class)) {
	for i := 0; i < n; {
		c := classAt(i)
		start := i
		for i < n && classAt(i) == c {
			i++
		}
		fn(start, i, c)
	}
}
