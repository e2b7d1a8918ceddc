// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	QR      QRConfig      `yaml:"qr"`
	Model   ModelConfig   `yaml:"model"`
	Mount   MountConfig   `yaml:"mount"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig selects what gets meshed: text content encoded as a QR
// symbol, or an existing black-and-white image.
type InputConfig struct {
	Content   string `yaml:"-"` // positional CLI argument, never from file
	ImagePath string `yaml:"image"`
	Threshold uint8  `yaml:"threshold"` // grayscale ink cutoff for images
}

// QRConfig holds QR encoding settings.
type QRConfig struct {
	ErrorCorrection string `yaml:"error_correction"` // low, medium, high, highest
	Border          int    `yaml:"border"`           // quiet zone, in modules
}

// ModelConfig holds the physical model dimensions, in millimeters.
type ModelConfig struct {
	SizeMM         float64 `yaml:"size_mm"`   // footprint edge length
	BaseHeightMM   float64 `yaml:"base_mm"`   // plate thickness
	ModuleHeightMM float64 `yaml:"module_mm"` // module relief above the plate
	FrameHeightMM  float64 `yaml:"frame_mm"`  // frame relief above the plate
	Invert         bool    `yaml:"invert"`    // raise background instead of ink
	DetectFrame    bool    `yaml:"detect_frame"`
	FrameBlocks    int     `yaml:"frame_blocks"` // drawn frame thickness, in cells
	FrameGap       int     `yaml:"frame_gap"`    // gap between symbol and drawn frame
}

// MountConfig holds keychain mount settings.
type MountConfig struct {
	Type           string  `yaml:"type"` // none or keychain
	Edge           string  `yaml:"edge"` // north, south, east, west
	HoleDiameterMM float64 `yaml:"hole_mm"`
	TabWidthMM     float64 `yaml:"tab_width_mm"`
	TabDepthMM     float64 `yaml:"tab_depth_mm"`
	ThicknessMM    float64 `yaml:"thickness_mm"`
	Segments       int     `yaml:"segments"`
}

// OutputConfig holds serialization settings.
type OutputConfig struct {
	Format             string `yaml:"format"` // stl or 3mf
	Path               string `yaml:"path"`
	ASCII              bool   `yaml:"ascii"` // ASCII STL instead of binary
	SeparateComponents bool   `yaml:"separate_components"`
	Validate           bool   `yaml:"validate"` // run the mesh check before writing
	BaseColor          string `yaml:"base_color"`
	ModuleColor        string `yaml:"module_color"`
	FrameColor         string `yaml:"frame_color"`
	MountColor         string `yaml:"mount_color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Threshold: 128,
		},
		QR: QRConfig{
			ErrorCorrection: "medium",
			Border:          4,
		},
		Model: ModelConfig{
			SizeMM:         50.0,
			BaseHeightMM:   2.0,
			ModuleHeightMM: 1.0,
			FrameHeightMM:  1.0,
			Invert:         false,
			DetectFrame:    false,
			FrameBlocks:    0,
			FrameGap:       1,
		},
		Mount: MountConfig{
			Type:           "none",
			Edge:           "north",
			HoleDiameterMM: 4.0,
			TabWidthMM:     15.0,
			TabDepthMM:     10.0,
			ThicknessMM:    2.0,
			Segments:       16,
		},
		Output: OutputConfig{
			Format:      "stl",
			Path:        "qrcode.stl",
			BaseColor:   "white",
			ModuleColor: "black",
			FrameColor:  "black",
			MountColor:  "white",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
