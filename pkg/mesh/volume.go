package mesh

import (
	"github.com/Faultbox/qrforge/pkg/grid"
)

// VolumeBuilder emits one independently closed box per non-base cell
// (or per merged same-class rectangle) on top of a full base-plate
// box. Internal coincident faces between stacked boxes are deliberate:
// each component stays watertight on its own, which is what
// multi-material serialization needs when components become separate
// colored solids. This trades triangle count for per-component
// robustness.
type VolumeBuilder struct {
	// MergeRegions merges 4-connected same-class cells into greedy
	// rectangles (right-then-down, row-major) to cut the box count.
	// Merging never affects correctness, only size.
	MergeRegions bool
}

// Build generates the full-volume mesh. Every box contributes exactly
// 12 triangles recorded as one component range: the base plate first,
// then one range per module/frame box in scan order.
func (b VolumeBuilder) Build(cg *grid.ClassGrid, profile grid.LayerProfile, cellSize float64) (*Mesh, *ComponentMap, error) {
	if err := validateBuildInput(cg, profile, cellSize); err != nil {
		return nil, nil, err
	}

	m := &Mesh{}
	comps := &ComponentMap{}
	totalW := float64(cg.Width()) * cellSize
	totalH := float64(cg.Height()) * cellSize

	// Base plate spanning the whole footprint.
	if err := AppendBox(m, 0, 0, totalW, totalH, profile.Floor, profile.BaseTop); err != nil {
		return nil, nil, err
	}
	comps.Record(TagBase, 0, len(m.Triangles))

	raised := func(c grid.Class) bool { return c != grid.ClassBase }

	var rects []cellRect
	if b.MergeRegions {
		rects = greedyRects(cg, raised)
	} else {
		for y := 0; y < cg.Height(); y++ {
			for x := 0; x < cg.Width(); x++ {
				if c := cg.At(x, y); raised(c) {
					rects = append(rects, cellRect{x: x, y: y, w: 1, h: 1, class: c})
				}
			}
		}
	}

	// One closed box per cell or merged region, sitting on the base.
	for _, r := range rects {
		x0, y0 := float64(r.x)*cellSize, float64(r.y)*cellSize
		x1, y1 := float64(r.x+r.w)*cellSize, float64(r.y+r.h)*cellSize

		start := len(m.Triangles)
		if err := AppendBox(m, x0, y0, x1, y1, profile.BaseTop, profile.Top(r.class)); err != nil {
			return nil, nil, err
		}
		comps.Record(tagForClass(r.class), start, len(m.Triangles))
	}

	return m, comps, nil
}
