package mesh

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Mount errors.
var (
	ErrHoleTooLarge = errors.New("mesh: mount hole does not fit inside the tab")
	ErrBadSegments  = errors.New("mesh: mount hole needs at least 8 segments")
	ErrBadEdge      = errors.New("mesh: unknown anchor edge")
)

// Edge identifies the side of the base footprint a mount attaches to.
type Edge uint8

// Anchor edges. North is the +Y side of the footprint.
const (
	EdgeNorth Edge = iota
	EdgeSouth
	EdgeEast
	EdgeWest
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeNorth:
		return "north"
	case EdgeSouth:
		return "south"
	case EdgeEast:
		return "east"
	case EdgeWest:
		return "west"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(e))
	}
}

// ParseEdge parses an edge name.
func ParseEdge(s string) (Edge, error) {
	switch s {
	case "north", "top":
		return EdgeNorth, nil
	case "south", "bottom":
		return EdgeSouth, nil
	case "east", "right":
		return EdgeEast, nil
	case "west", "left":
		return EdgeWest, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadEdge, s)
	}
}

// MountSpec describes a keychain mounting tab. All lengths are
// millimeters. TabWidth runs along the anchored edge, TabDepth away
// from the base. Immutable once constructed.
type MountSpec struct {
	Edge         Edge
	HoleDiameter float64
	TabWidth     float64
	TabDepth     float64
	Thickness    float64
	Segments     int
}

// DefaultMountSpec returns the stock keychain tab: 15 x 10 mm, 2 mm
// thick, 4 mm hole with 16 wall segments, centered on the north edge.
func DefaultMountSpec() MountSpec {
	return MountSpec{
		Edge:         EdgeNorth,
		HoleDiameter: 4.0,
		TabWidth:     15.0,
		TabDepth:     10.0,
		Thickness:    2.0,
		Segments:     16,
	}
}

func (s MountSpec) validate() error {
	if s.TabWidth <= 0 || s.TabDepth <= 0 || s.Thickness <= 0 || s.HoleDiameter <= 0 {
		return fmt.Errorf("%w: tab %gx%gx%g, hole %g",
			ErrDegenerateBox, s.TabWidth, s.TabDepth, s.Thickness, s.HoleDiameter)
	}
	if s.Segments < 8 {
		return fmt.Errorf("%w: got %d", ErrBadSegments, s.Segments)
	}
	if shorter := math.Min(s.TabWidth, s.TabDepth); s.HoleDiameter >= shorter {
		return fmt.Errorf("%w: hole %.2fmm, shorter tab side %.2fmm",
			ErrHoleTooLarge, s.HoleDiameter, shorter)
	}
	return nil
}

// BuildKeychainMount synthesizes a closed mounting tab with a through
// hole, adjoining the given edge of a baseWidth x baseDepth footprint
// and centered along it. The tab spans z in [0, Thickness]. Hole-wall
// normals face the hole axis; the caps are annulus triangulations
// between the hole ring and the tab outline, sharing every boundary
// vertex with the side walls so the solid is strictly edge-manifold.
// All triangles are tagged TagMount.
func BuildKeychainMount(spec MountSpec, baseWidth, baseDepth float64) (*Mesh, *ComponentMap, error) {
	if err := spec.validate(); err != nil {
		return nil, nil, err
	}
	if baseWidth <= 0 || baseDepth <= 0 {
		return nil, nil, fmt.Errorf("%w: base footprint %gx%g", ErrDegenerateBox, baseWidth, baseDepth)
	}

	var x0, x1, y0, y1 float64
	switch spec.Edge {
	case EdgeNorth:
		x0 = (baseWidth - spec.TabWidth) / 2
		x1 = x0 + spec.TabWidth
		y0, y1 = baseDepth, baseDepth+spec.TabDepth
	case EdgeSouth:
		x0 = (baseWidth - spec.TabWidth) / 2
		x1 = x0 + spec.TabWidth
		y0, y1 = -spec.TabDepth, 0
	case EdgeEast:
		y0 = (baseDepth - spec.TabWidth) / 2
		y1 = y0 + spec.TabWidth
		x0, x1 = baseWidth, baseWidth+spec.TabDepth
	case EdgeWest:
		y0 = (baseDepth - spec.TabWidth) / 2
		y1 = y0 + spec.TabWidth
		x0, x1 = -spec.TabDepth, 0
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrBadEdge, uint8(spec.Edge))
	}

	m := buildTabWithHole(x0, y0, x1, y1, spec.Thickness, spec.HoleDiameter/2, spec.Segments)
	comps := &ComponentMap{}
	comps.Record(TagMount, 0, len(m.Triangles))
	return m, comps, nil
}

// loopVertex is one vertex of an angular boundary loop around the hole
// center.
type loopVertex struct {
	angle float64
	x, y  float64
}

// buildTabWithHole constructs the closed tab solid: hole rings top and
// bottom, an outline loop made of the four tab corners plus the
// perimeter projection of every ring angle, zippered annulus caps,
// outer side walls, and the inner hole wall.
func buildTabWithHole(x0, y0, x1, y1, thickness, radius float64, segments int) *Mesh {
	cx, cy := (x0+x1)/2, (y0+y1)/2
	halfW, halfH := (x1-x0)/2, (y1-y0)/2

	inner := make([]loopVertex, segments)
	for i := range inner {
		a := 2 * math.Pi * float64(i) / float64(segments)
		inner[i] = loopVertex{angle: a, x: cx + radius*math.Cos(a), y: cy + radius*math.Sin(a)}
	}

	outer := outlineLoop(cx, cy, halfW, halfH, inner)

	m := &Mesh{}
	innerTop := make([]int, len(inner))
	innerBot := make([]int, len(inner))
	outerTop := make([]int, len(outer))
	outerBot := make([]int, len(outer))
	for i, v := range inner {
		innerTop[i] = m.AddVertex(Vec3{v.x, v.y, thickness})
		innerBot[i] = m.AddVertex(Vec3{v.x, v.y, 0})
	}
	for j, v := range outer {
		outerTop[j] = m.AddVertex(Vec3{v.x, v.y, thickness})
		outerBot[j] = m.AddVertex(Vec3{v.x, v.y, 0})
	}

	n, o := len(inner), len(outer)

	// Caps: zipper the two loops by angle. The top cap winds
	// counter-clockwise seen from +Z, the bottom cap mirrored.
	zipperLoops(inner, outer, func(i, j int, advanceOuter bool) {
		oj, ojn := outerTop[j%o], outerTop[(j+1)%o]
		ii, iin := innerTop[i%n], innerTop[(i+1)%n]
		if advanceOuter {
			m.AddTriangle(oj, ojn, ii)
		} else {
			m.AddTriangle(oj, iin, ii)
		}
	})
	zipperLoops(inner, outer, func(i, j int, advanceOuter bool) {
		oj, ojn := outerBot[j%o], outerBot[(j+1)%o]
		ii, iin := innerBot[i%n], innerBot[(i+1)%n]
		if advanceOuter {
			m.AddTriangle(oj, ii, ojn)
		} else {
			m.AddTriangle(oj, ii, iin)
		}
	})

	// Outer side walls, outward-facing.
	for j := 0; j < o; j++ {
		jn := (j + 1) % o
		m.AddTriangle(outerTop[j], outerBot[j], outerBot[jn])
		m.AddTriangle(outerTop[j], outerBot[jn], outerTop[jn])
	}

	// Hole wall, normals toward the hole axis.
	for i := 0; i < n; i++ {
		in := (i + 1) % n
		m.AddTriangle(innerTop[i], innerTop[in], innerBot[in])
		m.AddTriangle(innerTop[i], innerBot[in], innerBot[i])
	}

	return m
}

// outlineLoop builds the tab outline as an angularly ordered loop: the
// four rectangle corners plus the projection of every hole-ring angle
// onto the rectangle perimeter. Keeping the corners exact preserves
// the rectangular tab shape; keeping the projections gives the cap
// zipper matching subdivision on both loops.
func outlineLoop(cx, cy, halfW, halfH float64, inner []loopVertex) []loopVertex {
	outer := make([]loopVertex, 0, len(inner)+4)

	for _, v := range inner {
		dx, dy := math.Cos(v.angle), math.Sin(v.angle)
		t := math.Inf(1)
		if math.Abs(dx) > 1e-12 {
			t = halfW / math.Abs(dx)
		}
		if math.Abs(dy) > 1e-12 {
			if ty := halfH / math.Abs(dy); ty < t {
				t = ty
			}
		}
		outer = append(outer, loopVertex{angle: v.angle, x: cx + t*dx, y: cy + t*dy})
	}

	corners := [4][2]float64{{halfW, halfH}, {-halfW, halfH}, {-halfW, -halfH}, {halfW, -halfH}}
	for _, c := range corners {
		a := math.Atan2(c[1], c[0])
		if a < 0 {
			a += 2 * math.Pi
		}
		outer = append(outer, loopVertex{angle: a, x: cx + c[0], y: cy + c[1]})
	}

	sort.Slice(outer, func(i, j int) bool { return outer[i].angle < outer[j].angle })

	// Drop duplicates where a projection lands exactly on a corner.
	deduped := outer[:1]
	for _, v := range outer[1:] {
		if v.angle-deduped[len(deduped)-1].angle > 1e-9 {
			deduped = append(deduped, v)
		}
	}
	return deduped
}

// zipperLoops triangulates the annulus between two angularly sorted
// loops around a common center by always advancing whichever loop has
// the smaller next angle. Both loops must start near angle 0 and be
// star-shaped around the center. emit receives current loop positions;
// advanceOuter selects between the two triangle shapes of the strip.
func zipperLoops(inner, outer []loopVertex, emit func(i, j int, advanceOuter bool)) {
	n, o := len(inner), len(outer)

	nextAngle := func(loop []loopVertex, idx int) float64 {
		if idx+1 < len(loop) {
			return loop[idx+1].angle
		}
		return loop[0].angle + 2*math.Pi
	}

	i, j := 0, 0
	for i < n || j < o {
		if j < o && (i == n || nextAngle(outer, j) <= nextAngle(inner, i)) {
			emit(i, j, true)
			j++
		} else {
			emit(i, j, false)
			i++
		}
	}
}
