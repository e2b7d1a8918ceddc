// Package convert wires the full pipeline: encode or load a bitmap,
// classify cells into height classes, build a watertight mesh, attach
// the optional mount, and serialize it.
package convert

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/qrforge/internal/config"
	"github.com/Faultbox/qrforge/internal/logger"
	"github.com/Faultbox/qrforge/pkg/grid"
	"github.com/Faultbox/qrforge/pkg/mesh"
	"github.com/Faultbox/qrforge/pkg/qr"
	"github.com/Faultbox/qrforge/pkg/stl"
	"github.com/Faultbox/qrforge/pkg/threemf"
)

// Pipeline errors.
var (
	ErrNoInput   = errors.New("convert: no content or image to convert")
	ErrBadFormat = errors.New("convert: unknown output format")
	ErrBadMount  = errors.New("convert: unknown mount type")
	ErrLeakyMesh = errors.New("convert: mesh failed the closedness check")
)

// Result reports what a conversion produced.
type Result struct {
	GridWidth  int
	GridHeight int
	CellSize   float64
	Triangles  int
	Components int
	Path       string
	Report     *mesh.Report
}

// Run executes one conversion according to cfg. All state is per-call.
func Run(cfg *config.Config) (Result, error) {
	var res Result

	g, err := inputGrid(cfg)
	if err != nil {
		return res, err
	}

	if cfg.Model.FrameBlocks > 0 {
		g = g.AddFrame(cfg.Model.FrameBlocks, cfg.Model.FrameGap)
	}

	// Meshing flips the grid upside down so row 0 ends up at the far
	// edge of the plate and the printed code reads correctly from
	// above.
	g = g.FlipVertical()

	cg, err := grid.Classify(g, grid.ClassifyOptions{
		Invert:      cfg.Model.Invert,
		DetectFrame: cfg.Model.DetectFrame || cfg.Model.FrameBlocks > 0,
	})
	if err != nil {
		return res, err
	}

	profile := grid.LayerProfile{
		Floor:     0,
		BaseTop:   cfg.Model.BaseHeightMM,
		ModuleTop: cfg.Model.BaseHeightMM + cfg.Model.ModuleHeightMM,
		FrameTop:  cfg.Model.BaseHeightMM + cfg.Model.FrameHeightMM,
	}

	cellSize := cfg.Model.SizeMM / float64(g.Width())
	res.GridWidth, res.GridHeight = g.Width(), g.Height()
	res.CellSize = cellSize

	logger.Debug("classified grid",
		zap.Int("width", g.Width()),
		zap.Int("height", g.Height()),
		zap.Float64("cell_mm", cellSize))

	format := strings.ToLower(cfg.Output.Format)
	var builder mesh.Builder
	switch format {
	case "stl":
		builder = &mesh.SurfaceBuilder{}
	case "3mf":
		builder = &mesh.VolumeBuilder{}
	default:
		return res, fmt.Errorf("%w: %q", ErrBadFormat, cfg.Output.Format)
	}

	m, comps, err := builder.Build(cg, profile, cellSize)
	if err != nil {
		return res, err
	}

	if err := attachMount(cfg, m, comps, cellSize, g); err != nil {
		return res, err
	}

	res.Triangles = len(m.Triangles)
	res.Components = comps.Len()

	if cfg.Output.Validate {
		report := mesh.Check(m)
		res.Report = &report
		logger.Info("mesh check",
			zap.Bool("closed", report.Closed),
			zap.Bool("watertight", report.Watertight),
			zap.Int("boundary_edges", report.BoundaryEdges),
			zap.Float64("volume_mm3", report.SignedVolume))
		if !report.Closed {
			return res, fmt.Errorf("%w: %d boundary edges", ErrLeakyMesh, report.BoundaryEdges)
		}
	}

	if err := serialize(cfg, format, m, comps); err != nil {
		return res, err
	}
	res.Path = cfg.Output.Path

	logger.Info("model written",
		zap.String("path", cfg.Output.Path),
		zap.String("format", format),
		zap.Int("triangles", res.Triangles),
		zap.Int("components", res.Components))

	return res, nil
}

// inputGrid produces the cell grid from either text content or an
// image file.
func inputGrid(cfg *config.Config) (*grid.Grid, error) {
	if cfg.Input.ImagePath != "" {
		f, err := os.Open(cfg.Input.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("convert: opening image: %w", err)
		}
		defer f.Close()

		img, kind, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("convert: decoding image %s: %w", cfg.Input.ImagePath, err)
		}
		logger.Debug("loaded image",
			zap.String("path", cfg.Input.ImagePath),
			zap.String("kind", kind))
		return grid.FromImage(img, cfg.Input.Threshold)
	}

	if cfg.Input.Content == "" {
		return nil, ErrNoInput
	}
	return qr.Encode(cfg.Input.Content, cfg.QR.ErrorCorrection, cfg.QR.Border)
}

// attachMount builds the configured mount solid and merges it into the
// model, extending the component map past the merged triangles.
func attachMount(cfg *config.Config, m *mesh.Mesh, comps *mesh.ComponentMap, cellSize float64, g *grid.Grid) error {
	switch cfg.Mount.Type {
	case "", "none":
		return nil
	case "keychain":
	default:
		return fmt.Errorf("%w: %q", ErrBadMount, cfg.Mount.Type)
	}

	edge, err := mesh.ParseEdge(cfg.Mount.Edge)
	if err != nil {
		return err
	}
	spec := mesh.MountSpec{
		Edge:         edge,
		HoleDiameter: cfg.Mount.HoleDiameterMM,
		TabWidth:     cfg.Mount.TabWidthMM,
		TabDepth:     cfg.Mount.TabDepthMM,
		Thickness:    cfg.Mount.ThicknessMM,
		Segments:     cfg.Mount.Segments,
	}

	baseWidth := cellSize * float64(g.Width())
	baseDepth := cellSize * float64(g.Height())
	tab, tabComps, err := mesh.BuildKeychainMount(spec, baseWidth, baseDepth)
	if err != nil {
		return err
	}

	offset := m.Merge(tab)
	comps.Append(tabComps, offset)

	logger.Debug("attached mount",
		zap.String("edge", edge.String()),
		zap.Int("triangles", len(tab.Triangles)))
	return nil
}

// serialize writes the finished model in the selected format.
func serialize(cfg *config.Config, format string, m *mesh.Mesh, comps *mesh.ComponentMap) error {
	switch format {
	case "stl":
		return stl.WriteFile(cfg.Output.Path, m, "qrforge", cfg.Output.ASCII)
	case "3mf":
		colors, err := tagColors(cfg)
		if err != nil {
			return err
		}
		return threemf.WriteFile(cfg.Output.Path, m, comps, threemf.Options{
			Title:              "qrforge",
			Colors:             colors,
			SeparateComponents: cfg.Output.SeparateComponents,
		})
	default:
		return fmt.Errorf("%w: %q", ErrBadFormat, format)
	}
}

// tagColors resolves the configured color names into a tag palette.
// Walls inherit the base color.
func tagColors(cfg *config.Config) (map[mesh.Tag]threemf.Color, error) {
	named := []struct {
		tag  mesh.Tag
		spec string
	}{
		{mesh.TagBase, cfg.Output.BaseColor},
		{mesh.TagModule, cfg.Output.ModuleColor},
		{mesh.TagFrame, cfg.Output.FrameColor},
		{mesh.TagMount, cfg.Output.MountColor},
		{mesh.TagWall, cfg.Output.BaseColor},
	}

	colors := make(map[mesh.Tag]threemf.Color, len(named))
	for _, n := range named {
		c, err := threemf.ParseColor(n.spec)
		if err != nil {
			return nil, err
		}
		colors[n.tag] = c
	}
	return colors, nil
}
