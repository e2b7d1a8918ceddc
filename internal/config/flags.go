package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")

	flagImage     = flag.String("image", "", "Mesh an existing image instead of encoding text")
	flagLevel     = flag.String("level", "", "QR error correction: low, medium, high, highest")
	flagBorder    = flag.Int("border", -1, "Quiet zone width in modules")
	flagOutput    = flag.String("o", "", "Output file path")
	flagFormat    = flag.String("format", "", "Output format: stl or 3mf")
	flagSize      = flag.Float64("size", 0, "Model footprint edge length in mm")
	flagBase      = flag.Float64("base-height", 0, "Base plate thickness in mm")
	flagModule    = flag.Float64("module-height", 0, "Module relief height in mm")
	flagFrameH    = flag.Float64("frame-height", 0, "Frame relief height in mm")
	flagInvert    = flag.Bool("invert", false, "Raise background cells instead of ink")
	flagFrame     = flag.Bool("frame", false, "Detect border-touching ink as frame")
	flagFrameBlk  = flag.Int("frame-blocks", 0, "Draw a frame ring this many cells thick")
	flagMount     = flag.String("mount", "", "Mount type: none or keychain")
	flagMountEdge = flag.String("mount-edge", "", "Mount anchor edge: north, south, east, west")
	flagHole      = flag.Float64("hole", 0, "Mount hole diameter in mm")
	flagSeparate  = flag.Bool("separate", false, "Write one 3MF object per component")
	flagASCII     = flag.Bool("ascii", false, "Write ASCII STL instead of binary")
	flagValidate  = flag.Bool("validate", false, "Check the mesh before writing")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. The first
// positional argument is the content to encode.
func applyFlags(cfg *Config) {
	if flag.NArg() > 0 {
		cfg.Input.Content = flag.Arg(0)
	}
	if *flagImage != "" {
		cfg.Input.ImagePath = *flagImage
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLevel != "" {
		cfg.QR.ErrorCorrection = *flagLevel
	}
	if *flagBorder >= 0 {
		cfg.QR.Border = *flagBorder
	}
	if *flagOutput != "" {
		cfg.Output.Path = *flagOutput
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagSize > 0 {
		cfg.Model.SizeMM = *flagSize
	}
	if *flagBase > 0 {
		cfg.Model.BaseHeightMM = *flagBase
	}
	if *flagModule > 0 {
		cfg.Model.ModuleHeightMM = *flagModule
	}
	if *flagFrameH > 0 {
		cfg.Model.FrameHeightMM = *flagFrameH
	}
	if *flagInvert {
		cfg.Model.Invert = true
	}
	if *flagFrame {
		cfg.Model.DetectFrame = true
	}
	if *flagFrameBlk > 0 {
		cfg.Model.FrameBlocks = *flagFrameBlk
	}
	if *flagMount != "" {
		cfg.Mount.Type = *flagMount
	}
	if *flagMountEdge != "" {
		cfg.Mount.Edge = *flagMountEdge
	}
	if *flagHole > 0 {
		cfg.Mount.HoleDiameterMM = *flagHole
	}
	if *flagSeparate {
		cfg.Output.SeparateComponents = true
	}
	if *flagASCII {
		cfg.Output.ASCII = true
	}
	if *flagValidate {
		cfg.Output.Validate = true
	}
}
