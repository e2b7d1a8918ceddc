package mesh

import (
	"math"
	"sort"
)

// Report summarizes the structural health of a mesh. Edges are counted
// over position-deduplicated vertices, and collinear edges are split
// at intermediate vertices first, so neither duplicated coincident
// vertices nor T-vertices from merged faces masquerade as holes.
type Report struct {
	Triangles       int
	UniquePositions int

	// BoundaryEdges is the number of edge segments bounded by an odd
	// number of triangles. A closed solid has none.
	BoundaryEdges int

	// NonManifoldEdges is the number of edge segments bounded by more
	// than two triangles. Stacked full-volume components legitimately
	// produce these where boxes touch; a single solid should not.
	NonManifoldEdges int

	// Degenerate is the number of triangles with a repeated corner
	// position or (near) zero area.
	Degenerate int

	// Closed reports whether every edge segment is bounded by an even
	// number (at least two) of triangles, i.e. the surface encloses
	// its volume with no gaps.
	Closed bool

	// Watertight additionally requires every edge segment to be
	// bounded by exactly two triangles (strict manifold).
	Watertight bool

	// SignedVolume is the enclosed volume; negative or skewed values
	// indicate inconsistent winding.
	SignedVolume float64

	Min, Max Vec3
}

// positionKey quantizes a position for coincidence matching, following
// the usual snap-to-grid trick for float comparisons.
type positionKey struct {
	x, y, z int64
}

const positionEpsilon = 1e-6 // mm

func quantizeAt(v float64, eps float64) int64 {
	return int64(math.Round(v / eps))
}

func quantize(v Vec3) positionKey {
	return positionKey{
		x: quantizeAt(v.X, positionEpsilon),
		y: quantizeAt(v.Y, positionEpsilon),
		z: quantizeAt(v.Z, positionEpsilon),
	}
}

type edgeKey struct {
	a, b int
}

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// lineKey identifies the infinite line an edge lies on: a canonical
// unit direction plus the line's closest point to the origin.
type lineKey struct {
	dir    positionKey
	anchor positionKey
}

// Check runs an edge census over the mesh and reports closedness,
// manifoldness, degeneracy, volume, and bounds. It never modifies the
// mesh.
func Check(m *Mesh) Report {
	r := Report{Triangles: len(m.Triangles)}
	r.Min, r.Max = m.Bounds()
	r.SignedVolume = m.SignedVolume()

	// Deduplicate vertex positions.
	posIDs := make(map[positionKey]int)
	var points []Vec3
	vertexPos := make([]int, len(m.Vertices))
	for i, v := range m.Vertices {
		key := quantize(v)
		id, ok := posIDs[key]
		if !ok {
			id = len(points)
			posIDs[key] = id
			points = append(points, v)
		}
		vertexPos[i] = id
	}
	r.UniquePositions = len(posIDs)

	edges := make(map[edgeKey]int)
	for i, t := range m.Triangles {
		a, b, c := vertexPos[t.A], vertexPos[t.B], vertexPos[t.C]
		if a == b || b == c || a == c || m.TriangleNormal(i).Length() < positionEpsilon {
			r.Degenerate++
			continue
		}
		edges[makeEdgeKey(a, b)]++
		edges[makeEdgeKey(b, c)]++
		edges[makeEdgeKey(c, a)]++
	}

	segments := refineCollinear(edges, points)

	r.Closed = len(segments) > 0
	r.Watertight = len(segments) > 0
	for _, count := range segments {
		if count%2 != 0 {
			r.BoundaryEdges++
			r.Closed = false
		}
		if count > 2 {
			r.NonManifoldEdges++
		}
		if count != 2 {
			r.Watertight = false
		}
	}
	if r.Degenerate > 0 {
		r.Closed = false
		r.Watertight = false
	}
	return r
}

// refineCollinear splits every edge at vertex positions lying strictly
// between its endpoints on the same line, and re-counts the resulting
// segments. Merged rectangles abutting finer subdivisions meet along
// such T-vertices; after refinement both sides contribute matching
// segments.
func refineCollinear(edges map[edgeKey]int, points []Vec3) map[edgeKey]int {
	type lineEntry struct {
		edges  []edgeKey
		onLine map[int]float64 // position id -> parameter along the line
	}

	const dirEps = 1e-9

	lines := make(map[lineKey]*lineEntry)
	for e := range edges {
		a, b := points[e.a], points[e.b]
		d := b.Sub(a).Normalize()
		// Canonical direction: first non-zero component positive.
		switch {
		case math.Abs(d.X) > dirEps:
			if d.X < 0 {
				d = d.Scale(-1)
			}
		case math.Abs(d.Y) > dirEps:
			if d.Y < 0 {
				d = d.Scale(-1)
			}
		default:
			if d.Z < 0 {
				d = d.Scale(-1)
			}
		}
		anchor := a.Sub(d.Scale(a.Dot(d)))
		key := lineKey{
			dir:    positionKey{quantizeAt(d.X, dirEps), quantizeAt(d.Y, dirEps), quantizeAt(d.Z, dirEps)},
			anchor: quantize(anchor),
		}
		entry, ok := lines[key]
		if !ok {
			entry = &lineEntry{onLine: make(map[int]float64)}
			lines[key] = entry
		}
		entry.edges = append(entry.edges, e)
		entry.onLine[e.a] = points[e.a].Dot(d)
		entry.onLine[e.b] = points[e.b].Dot(d)
	}

	segments := make(map[edgeKey]int, len(edges))
	var split []int
	for _, entry := range lines {
		for _, e := range entry.edges {
			count := edges[e]
			ta, tb := entry.onLine[e.a], entry.onLine[e.b]
			if ta > tb {
				ta, tb = tb, ta
				e = edgeKey{e.b, e.a}
			}

			split = append(split[:0], e.a)
			for id, t := range entry.onLine {
				if t > ta+positionEpsilon && t < tb-positionEpsilon {
					split = append(split, id)
				}
			}
			split = append(split, e.b)
			sort.Slice(split, func(i, j int) bool { return entry.onLine[split[i]] < entry.onLine[split[j]] })

			for i := 0; i+1 < len(split); i++ {
				segments[makeEdgeKey(split[i], split[i+1])] += count
			}
		}
	}
	return segments
}
