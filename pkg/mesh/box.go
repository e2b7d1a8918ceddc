package mesh

import (
	"errors"
	"fmt"
)

// Geometry errors.
var (
	ErrDegenerateBox  = errors.New("mesh: box extents must be strictly positive")
	ErrDegenerateGrid = errors.New("mesh: class grid and cell size must be non-empty and positive")
)

// boxTriangles indexes the 8 box corners into 12 outward-wound
// triangles, 2 per face. Corner layout: 0-3 are the bottom face
// counter-clockwise from (x0,y0), 4-7 the top face in the same order.
var boxTriangles = [12]Triangle{
	{0, 2, 1}, {0, 3, 2}, // bottom, -Z
	{4, 5, 6}, {4, 6, 7}, // top, +Z
	{0, 1, 5}, {0, 5, 4}, // front, -Y
	{3, 7, 6}, {3, 6, 2}, // back, +Y
	{0, 4, 7}, {0, 7, 3}, // left, -X
	{1, 2, 6}, {1, 6, 5}, // right, +X
}

// AppendBox appends a closed rectangular prism spanning
// [x0,x1] x [y0,y1] x [z0,z1] to the mesh: 8 vertices, 12 triangles,
// outward normals. All three extents must be strictly positive.
func AppendBox(m *Mesh, x0, y0, x1, y1, z0, z1 float64) error {
	if x1 <= x0 || y1 <= y0 || z1 <= z0 {
		return fmt.Errorf("%w: [%g,%g]x[%g,%g]x[%g,%g]", ErrDegenerateBox, x0, x1, y0, y1, z0, z1)
	}

	base := len(m.Vertices)
	m.Vertices = append(m.Vertices,
		Vec3{x0, y0, z0},
		Vec3{x1, y0, z0},
		Vec3{x1, y1, z0},
		Vec3{x0, y1, z0},
		Vec3{x0, y0, z1},
		Vec3{x1, y0, z1},
		Vec3{x1, y1, z1},
		Vec3{x0, y1, z1},
	)
	for _, t := range boxTriangles {
		m.AddTriangle(base+t.A, base+t.B, base+t.C)
	}
	return nil
}

// Box builds a standalone closed box mesh. See AppendBox.
func Box(x0, y0, x1, y1, z0, z1 float64) (*Mesh, error) {
	m := &Mesh{}
	if err := AppendBox(m, x0, y0, x1, y1, z0, z1); err != nil {
		return nil, err
	}
	return m, nil
}
