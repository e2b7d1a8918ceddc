// Package mesh generates watertight triangle meshes from height-class
// grids: an optimized surface mesh for single-material printing, a
// full-volume per-component mesh for multi-material printing, and a
// keychain mount primitive.
package mesh

import "math"

// Vec3 is a point or direction in millimeter space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length, or the zero vector if v
// is degenerate.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Triangle references three mesh vertices. Vertex order is
// counter-clockwise viewed from outside the solid; the winding defines
// the outward normal.
type Triangle struct {
	A, B, C int
}

// Mesh is an ordered vertex and triangle soup. Coincident duplicate
// vertices between neighboring faces are tolerated; deduplication is
// an optimization, not a correctness requirement.
type Mesh struct {
	Vertices  []Vec3
	Triangles []Triangle
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddTriangle appends a triangle over existing vertex indices.
func (m *Mesh) AddTriangle(a, b, c int) {
	m.Triangles = append(m.Triangles, Triangle{a, b, c})
}

// AddQuad appends four vertices and two triangles covering the quad
// v0-v1-v2-v3. The quad must be wound counter-clockwise viewed from
// the side its normal should face.
func (m *Mesh) AddQuad(v0, v1, v2, v3 Vec3) {
	i := m.AddVertex(v0)
	m.AddVertex(v1)
	m.AddVertex(v2)
	m.AddVertex(v3)
	m.AddTriangle(i, i+1, i+2)
	m.AddTriangle(i, i+2, i+3)
}

// Merge appends all geometry of other to m and returns the index of
// the first merged triangle.
func (m *Mesh) Merge(other *Mesh) int {
	vertexOffset := len(m.Vertices)
	triangleOffset := len(m.Triangles)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, t := range other.Triangles {
		m.Triangles = append(m.Triangles, Triangle{
			A: t.A + vertexOffset,
			B: t.B + vertexOffset,
			C: t.C + vertexOffset,
		})
	}
	return triangleOffset
}

// Extract copies the half-open triangle range [start, end) into a new
// standalone mesh with compactly reindexed vertices.
func (m *Mesh) Extract(start, end int) *Mesh {
	out := &Mesh{}
	remap := make(map[int]int)
	for _, t := range m.Triangles[start:end] {
		tri := Triangle{}
		for i, idx := range [3]int{t.A, t.B, t.C} {
			newIdx, ok := remap[idx]
			if !ok {
				newIdx = out.AddVertex(m.Vertices[idx])
				remap[idx] = newIdx
			}
			switch i {
			case 0:
				tri.A = newIdx
			case 1:
				tri.B = newIdx
			case 2:
				tri.C = newIdx
			}
		}
		out.Triangles = append(out.Triangles, tri)
	}
	return out
}

// TriangleNormal returns the (unnormalized) outward normal of triangle i.
func (m *Mesh) TriangleNormal(i int) Vec3 {
	t := m.Triangles[i]
	a, b, c := m.Vertices[t.A], m.Vertices[t.B], m.Vertices[t.C]
	return b.Sub(a).Cross(c.Sub(a))
}

// TriangleCentroid returns the centroid of triangle i.
func (m *Mesh) TriangleCentroid(i int) Vec3 {
	t := m.Triangles[i]
	a, b, c := m.Vertices[t.A], m.Vertices[t.B], m.Vertices[t.C]
	return a.Add(b).Add(c).Scale(1.0 / 3.0)
}

// SignedVolume returns the volume enclosed by the mesh via the
// divergence theorem. It is positive for a closed mesh with consistent
// outward winding and equals the true solid volume; flipped faces or
// holes skew it.
func (m *Mesh) SignedVolume() float64 {
	var v float64
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t.A], m.Vertices[t.B], m.Vertices[t.C]
		v += a.Dot(b.Cross(c))
	}
	return v / 6
}

// Bounds returns the axis-aligned bounding box of the mesh. A mesh
// with no vertices returns two zero vectors.
func (m *Mesh) Bounds() (min, max Vec3) {
	if len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return min, max
}
