package mesh

import (
	"errors"
	"testing"
)

func TestBox(t *testing.T) {
	m, err := Box(0, 0, 2, 3, 0, 1)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}

	if len(m.Vertices) != 8 {
		t.Errorf("vertices = %d, want 8", len(m.Vertices))
	}
	if len(m.Triangles) != 12 {
		t.Errorf("triangles = %d, want 12", len(m.Triangles))
	}

	report := Check(m)
	if !report.Watertight {
		t.Errorf("box should be watertight: %+v", report)
	}
	if report.UniquePositions != 8 {
		t.Errorf("unique positions = %d, want 8", report.UniquePositions)
	}
	if !almostEqual(report.SignedVolume, 6, 1e-9) {
		t.Errorf("volume = %g, want 6", report.SignedVolume)
	}
}

func TestBoxOutwardWinding(t *testing.T) {
	m, err := Box(0, 0, 2, 2, 0, 2)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	center := Vec3{1, 1, 1}

	for i := range m.Triangles {
		n := m.TriangleNormal(i)
		out := m.TriangleCentroid(i).Sub(center)
		if n.Dot(out) <= 0 {
			t.Errorf("triangle %d normal %v points inward", i, n)
		}
	}
}

func TestBoxDegenerate(t *testing.T) {
	tests := []struct {
		name                   string
		x0, y0, x1, y1, z0, z1 float64
	}{
		{"zero width", 0, 0, 0, 1, 0, 1},
		{"zero depth", 0, 0, 1, 0, 0, 1},
		{"zero height", 0, 0, 1, 1, 1, 1},
		{"inverted x", 1, 0, 0, 1, 0, 1},
		{"inverted z", 0, 0, 1, 1, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Box(tt.x0, tt.y0, tt.x1, tt.y1, tt.z0, tt.z1)
			if !errors.Is(err, ErrDegenerateBox) {
				t.Errorf("Box error = %v, want ErrDegenerateBox", err)
			}
		})
	}
}

func TestAppendBoxKeepsExisting(t *testing.T) {
	m, err := Box(0, 0, 1, 1, 0, 1)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	if err := AppendBox(m, 10, 10, 11, 11, 0, 1); err != nil {
		t.Fatalf("AppendBox: %v", err)
	}

	if len(m.Triangles) != 24 {
		t.Fatalf("triangles = %d, want 24", len(m.Triangles))
	}
	if !almostEqual(m.SignedVolume(), 2, 1e-9) {
		t.Errorf("volume = %g, want 2", m.SignedVolume())
	}
}
