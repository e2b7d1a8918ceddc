// Package stl writes triangle meshes in the STL format, binary by
// default with an ASCII variant. STL carries geometry only; component
// and color data stays behind in the mesh's component map.
package stl

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Faultbox/qrforge/pkg/mesh"
)

// STL errors.
var (
	ErrEmptyMesh = errors.New("stl: mesh has no triangles")
)

const headerSize = 80

// Write serializes the mesh as binary STL: an 80-byte header, a uint32
// triangle count, then 50 bytes per triangle (normal, three vertices,
// attribute word), all little-endian float32.
func Write(w io.Writer, m *mesh.Mesh, name string) error {
	if m == nil || len(m.Triangles) == 0 {
		return ErrEmptyMesh
	}

	bw := bufio.NewWriter(w)

	var header [headerSize]byte
	copy(header[:], name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("stl: writing header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return fmt.Errorf("stl: writing triangle count: %w", err)
	}

	var record [50]byte
	for i, t := range m.Triangles {
		n := m.TriangleNormal(i).Normalize()
		a, b, c := m.Vertices[t.A], m.Vertices[t.B], m.Vertices[t.C]

		off := 0
		for _, v := range [4]mesh.Vec3{n, a, b, c} {
			binary.LittleEndian.PutUint32(record[off:], math.Float32bits(float32(v.X)))
			binary.LittleEndian.PutUint32(record[off+4:], math.Float32bits(float32(v.Y)))
			binary.LittleEndian.PutUint32(record[off+8:], math.Float32bits(float32(v.Z)))
			off += 12
		}
		record[48], record[49] = 0, 0 // attribute byte count

		if _, err := bw.Write(record[:]); err != nil {
			return fmt.Errorf("stl: writing triangle %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteASCII serializes the mesh as ASCII STL. Mostly useful for
// debugging; binary output is an order of magnitude smaller.
func WriteASCII(w io.Writer, m *mesh.Mesh, name string) error {
	if m == nil || len(m.Triangles) == 0 {
		return ErrEmptyMesh
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for i, t := range m.Triangles {
		n := m.TriangleNormal(i).Normalize()
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", n.X, n.Y, n.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, idx := range [3]int{t.A, t.B, t.C} {
			v := m.Vertices[idx]
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// WriteFile writes the mesh to path, binary unless ascii is set.
func WriteFile(path string, m *mesh.Mesh, name string, ascii bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stl: creating %s: %w", path, err)
	}
	defer f.Close()

	if ascii {
		err = WriteASCII(f, m, name)
	} else {
		err = Write(f, m, name)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
