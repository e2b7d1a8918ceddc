package mesh

import (
	"errors"
	"math"
	"testing"
)

func TestParseEdge(t *testing.T) {
	tests := []struct {
		in      string
		want    Edge
		wantErr bool
	}{
		{"north", EdgeNorth, false},
		{"top", EdgeNorth, false},
		{"south", EdgeSouth, false},
		{"bottom", EdgeSouth, false},
		{"east", EdgeEast, false},
		{"right", EdgeEast, false},
		{"west", EdgeWest, false},
		{"left", EdgeWest, false},
		{"diagonal", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseEdge(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEdge(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, ErrBadEdge) {
				t.Errorf("ParseEdge(%q) error %v is not ErrBadEdge", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEdge(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMountSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MountSpec)
		wantErr error
	}{
		{"default ok", func(s *MountSpec) {}, nil},
		{"zero thickness", func(s *MountSpec) { s.Thickness = 0 }, ErrDegenerateBox},
		{"negative width", func(s *MountSpec) { s.TabWidth = -1 }, ErrDegenerateBox},
		{"too few segments", func(s *MountSpec) { s.Segments = 4 }, ErrBadSegments},
		{"hole equals short side", func(s *MountSpec) { s.HoleDiameter = 10 }, ErrHoleTooLarge},
		{"hole wider than tab", func(s *MountSpec) { s.HoleDiameter = 20 }, ErrHoleTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := DefaultMountSpec()
			tt.mutate(&spec)
			_, _, err := BuildKeychainMount(spec, 30, 30)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMountBadBaseFootprint(t *testing.T) {
	if _, _, err := BuildKeychainMount(DefaultMountSpec(), 0, 30); !errors.Is(err, ErrDegenerateBox) {
		t.Errorf("error = %v, want ErrDegenerateBox", err)
	}
}

func TestMountUnknownEdge(t *testing.T) {
	spec := DefaultMountSpec()
	spec.Edge = Edge(9)
	if _, _, err := BuildKeychainMount(spec, 30, 30); !errors.Is(err, ErrBadEdge) {
		t.Errorf("error = %v, want ErrBadEdge", err)
	}
}

func TestMountWatertight(t *testing.T) {
	m, comps, err := BuildKeychainMount(DefaultMountSpec(), 30, 30)
	if err != nil {
		t.Fatalf("BuildKeychainMount: %v", err)
	}

	report := Check(m)
	if !report.Watertight {
		t.Errorf("mount should be strictly watertight: %+v", report)
	}
	if report.Degenerate != 0 {
		t.Errorf("%d degenerate triangles", report.Degenerate)
	}

	if comps.Len() != 1 {
		t.Fatalf("component ranges = %d, want 1", comps.Len())
	}
	tag, start, end := comps.Range(0)
	if tag != TagMount || start != 0 || end != len(m.Triangles) {
		t.Errorf("range = (%v, %d, %d), want all triangles tagged mount", tag, start, end)
	}
}

func TestMountVolume(t *testing.T) {
	spec := DefaultMountSpec()
	m, _, err := BuildKeychainMount(spec, 30, 30)
	if err != nil {
		t.Fatalf("BuildKeychainMount: %v", err)
	}

	// Tab slab minus the inscribed polygon approximating the hole:
	// a regular n-gon of circumradius r has area (n/2) r^2 sin(2pi/n).
	n := float64(spec.Segments)
	r := spec.HoleDiameter / 2
	holeArea := (n / 2) * r * r * math.Sin(2*math.Pi/n)
	want := (spec.TabWidth*spec.TabDepth - holeArea) * spec.Thickness

	if !almostEqual(m.SignedVolume(), want, 1e-9) {
		t.Errorf("volume = %g, want %g", m.SignedVolume(), want)
	}
}

func TestMountHoleRing(t *testing.T) {
	spec := DefaultMountSpec()
	m, _, err := BuildKeychainMount(spec, 30, 30)
	if err != nil {
		t.Fatalf("BuildKeychainMount: %v", err)
	}

	// Tab center for the north edge of a 30x30 base.
	cx, cy := 15.0, 35.0
	r := spec.HoleDiameter / 2

	top, bottom := 0, 0
	for _, v := range m.Vertices {
		d := math.Hypot(v.X-cx, v.Y-cy)
		if !almostEqual(d, r, 1e-9) {
			continue
		}
		switch {
		case almostEqual(v.Z, spec.Thickness, 1e-9):
			top++
		case almostEqual(v.Z, 0, 1e-9):
			bottom++
		}
	}
	if top != spec.Segments || bottom != spec.Segments {
		t.Errorf("hole ring vertices = %d top, %d bottom, want %d each", top, bottom, spec.Segments)
	}
}

func TestMountPlacement(t *testing.T) {
	spec := DefaultMountSpec()
	baseW, baseD := 40.0, 30.0

	tests := []struct {
		edge       Edge
		minX, maxX float64
		minY, maxY float64
	}{
		{EdgeNorth, (baseW - spec.TabWidth) / 2, (baseW + spec.TabWidth) / 2, baseD, baseD + spec.TabDepth},
		{EdgeSouth, (baseW - spec.TabWidth) / 2, (baseW + spec.TabWidth) / 2, -spec.TabDepth, 0},
		{EdgeEast, baseW, baseW + spec.TabDepth, (baseD - spec.TabWidth) / 2, (baseD + spec.TabWidth) / 2},
		{EdgeWest, -spec.TabDepth, 0, (baseD - spec.TabWidth) / 2, (baseD + spec.TabWidth) / 2},
	}

	for _, tt := range tests {
		t.Run(tt.edge.String(), func(t *testing.T) {
			s := spec
			s.Edge = tt.edge
			m, _, err := BuildKeychainMount(s, baseW, baseD)
			if err != nil {
				t.Fatalf("BuildKeychainMount: %v", err)
			}

			min, max := m.Bounds()
			if !almostEqual(min.X, tt.minX, 1e-9) || !almostEqual(max.X, tt.maxX, 1e-9) {
				t.Errorf("x bounds = [%g, %g], want [%g, %g]", min.X, max.X, tt.minX, tt.maxX)
			}
			if !almostEqual(min.Y, tt.minY, 1e-9) || !almostEqual(max.Y, tt.maxY, 1e-9) {
				t.Errorf("y bounds = [%g, %g], want [%g, %g]", min.Y, max.Y, tt.minY, tt.maxY)
			}
			if !almostEqual(min.Z, 0, 1e-9) || !almostEqual(max.Z, s.Thickness, 1e-9) {
				t.Errorf("z bounds = [%g, %g], want [0, %g]", min.Z, max.Z, s.Thickness)
			}

			report := Check(m)
			if !report.Watertight {
				t.Errorf("mount on %v edge not watertight: %+v", tt.edge, report)
			}
		})
	}
}
