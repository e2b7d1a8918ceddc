package grid

import (
	"errors"
	"testing"
)

// mustGrid builds a grid from rows or fails the test.
func mustGrid(t *testing.T, rows [][]uint8) *Grid {
	t.Helper()
	g, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return g
}

func TestClassifyBasic(t *testing.T) {
	g := mustGrid(t, [][]uint8{
		{0, 1, 0},
		{1, 1, 1},
		{0, 1, 0},
	})

	cg, err := Classify(g, ClassifyOptions{})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := ClassBase
			if g.InkAt(x, y) {
				want = ClassModule
			}
			if cg.At(x, y) != want {
				t.Errorf("At(%d, %d) = %v, want %v", x, y, cg.At(x, y), want)
			}
		}
	}
}

func TestClassifyInvert(t *testing.T) {
	g := mustGrid(t, [][]uint8{
		{1, 0},
		{0, 1},
	})

	cg, err := Classify(g, ClassifyOptions{Invert: true})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if cg.At(0, 0) != ClassBase || cg.At(1, 0) != ClassModule {
		t.Error("invert did not swap interpretation")
	}
}

func TestClassifyAllBackground(t *testing.T) {
	g, err := New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cg, err := Classify(g, ClassifyOptions{DetectFrame: true})
	if err != nil {
		t.Fatalf("Classify on empty grid: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if cg.At(x, y) != ClassBase {
				t.Fatalf("At(%d, %d) = %v, want base", x, y, cg.At(x, y))
			}
		}
	}
}

func TestClassifyNilGrid(t *testing.T) {
	if _, err := Classify(nil, ClassifyOptions{}); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("Classify(nil) error = %v, want ErrEmptyGrid", err)
	}
}

func TestClassifyDetectFrame(t *testing.T) {
	// A closed ring touching the border plus an interior blob. The
	// ring must classify as frame, the blob as module.
	g := mustGrid(t, [][]uint8{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 1, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	})

	cg, err := Classify(g, ClassifyOptions{DetectFrame: true})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if cg.At(0, 0) != ClassFrame || cg.At(4, 2) != ClassFrame {
		t.Error("border ring not classified as frame")
	}
	if cg.At(2, 2) != ClassModule {
		t.Errorf("interior blob = %v, want module", cg.At(2, 2))
	}
	if cg.At(1, 1) != ClassBase {
		t.Errorf("background = %v, want base", cg.At(1, 1))
	}
}

func TestClassifyDetectFramePartialBorderTouch(t *testing.T) {
	// A component touching the border with a single cell is frame in
	// full, even its interior cells.
	g := mustGrid(t, [][]uint8{
		{0, 1, 0},
		{0, 1, 0},
		{0, 0, 0},
	})

	cg, err := Classify(g, ClassifyOptions{DetectFrame: true})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cg.At(1, 0) != ClassFrame || cg.At(1, 1) != ClassFrame {
		t.Error("border-touching component should be frame in full")
	}
}

func TestClassifyDetectFrameDiagonalNotConnected(t *testing.T) {
	// Diagonal adjacency does not connect components: the center cell
	// stays a module even though it touches the border cell corner to
	// corner.
	g := mustGrid(t, [][]uint8{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})

	cg, err := Classify(g, ClassifyOptions{DetectFrame: true})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cg.At(0, 0) != ClassFrame {
		t.Error("corner cell should be frame")
	}
	if cg.At(1, 1) != ClassModule {
		t.Error("diagonal neighbor should remain module")
	}
}

func TestClassifyFrameCellsHint(t *testing.T) {
	g := mustGrid(t, [][]uint8{
		{1, 1, 1},
		{0, 1, 0},
	})

	cg, err := Classify(g, ClassifyOptions{
		DetectFrame: true,
		FrameCells:  []Cell{{0, 0}, {2, 0}, {99, 99}}, // out-of-range hint ignored
	})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	// Hints bypass detection entirely.
	if cg.At(0, 0) != ClassFrame || cg.At(2, 0) != ClassFrame {
		t.Error("hinted cells not marked frame")
	}
	if cg.At(1, 0) != ClassModule || cg.At(1, 1) != ClassModule {
		t.Error("unhinted ink cells should stay module when hints are given")
	}
}

func TestLayerProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile LayerProfile
		wantErr bool
	}{
		{"valid", LayerProfile{0, 2, 3, 3}, false},
		{"flat tiers", LayerProfile{0, 2, 2, 2}, false},
		{"zero base", LayerProfile{0, 0, 1, 1}, true},
		{"module below base", LayerProfile{0, 2, 1.5, 3}, true},
		{"frame below module", LayerProfile{0, 2, 3, 2.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrBadProfile) {
				t.Errorf("error %v is not ErrBadProfile", err)
			}
		})
	}
}

func TestLayerProfileTop(t *testing.T) {
	p := LayerProfile{Floor: 0, BaseTop: 2, ModuleTop: 3, FrameTop: 4}
	if p.Top(ClassBase) != 2 {
		t.Errorf("Top(base) = %g, want 2", p.Top(ClassBase))
	}
	if p.Top(ClassModule) != 3 {
		t.Errorf("Top(module) = %g, want 3", p.Top(ClassModule))
	}
	if p.Top(ClassFrame) != 4 {
		t.Errorf("Top(frame) = %g, want 4", p.Top(ClassFrame))
	}
}
