package mesh

import (
	"fmt"

	"github.com/Faultbox/qrforge/pkg/grid"
)

// Builder turns a classified grid into a triangle mesh plus a
// component map. The two strategies differ in what they optimize for:
// SurfaceBuilder emits the minimum visible surface for single-material
// output, VolumeBuilder emits independently closed solids per
// component for multi-material output. The strategy is selected once
// per conversion.
type Builder interface {
	Build(cg *grid.ClassGrid, profile grid.LayerProfile, cellSize float64) (*Mesh, *ComponentMap, error)
}

func validateBuildInput(cg *grid.ClassGrid, profile grid.LayerProfile, cellSize float64) error {
	if cg == nil || cg.Width() <= 0 || cg.Height() <= 0 {
		return ErrDegenerateGrid
	}
	if cellSize <= 0 {
		return fmt.Errorf("%w: cell size %g", ErrDegenerateGrid, cellSize)
	}
	return profile.Validate()
}

func tagForClass(c grid.Class) Tag {
	switch c {
	case grid.ClassModule:
		return TagModule
	case grid.ClassFrame:
		return TagFrame
	default:
		return TagBase
	}
}

// cellRect is an axis-aligned run of same-class cells, in cell units.
type cellRect struct {
	x, y, w, h int
	class      grid.Class
}

// greedyRects decomposes the included cells into maximal rectangles of
// a single class, expanding right first and then down, scanning
// row-major. The decomposition is a partition: every included cell is
// covered exactly once.
func greedyRects(cg *grid.ClassGrid, include func(grid.Class) bool) []cellRect {
	width, height := cg.Width(), cg.Height()
	visited := make([]bool, width*height)
	var rects []cellRect

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] {
				continue
			}
			class := cg.At(x, y)
			if !include(class) {
				continue
			}

			// Expand right.
			w := 1
			for x+w < width && !visited[y*width+x+w] && cg.At(x+w, y) == class {
				w++
			}

			// Expand down while the whole row segment matches.
			h := 1
		expand:
			for y+h < height {
				for i := 0; i < w; i++ {
					if visited[(y+h)*width+x+i] || cg.At(x+i, y+h) != class {
						break expand
					}
				}
				h++
			}

			for dy := 0; dy < h; dy++ {
				for dx := 0; dx < w; dx++ {
					visited[(y+dy)*width+x+dx] = true
				}
			}
			rects = append(rects, cellRect{x: x, y: y, w: w, h: h, class: class})
		}
	}
	return rects
}
