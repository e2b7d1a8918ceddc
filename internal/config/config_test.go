package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.QR.ErrorCorrection != "medium" {
		t.Errorf("expected error correction 'medium', got %s", cfg.QR.ErrorCorrection)
	}
	if cfg.QR.Border != 4 {
		t.Errorf("expected border 4, got %d", cfg.QR.Border)
	}

	if cfg.Model.SizeMM != 50.0 {
		t.Errorf("expected size 50mm, got %g", cfg.Model.SizeMM)
	}
	if cfg.Model.BaseHeightMM != 2.0 {
		t.Errorf("expected base height 2mm, got %g", cfg.Model.BaseHeightMM)
	}
	if cfg.Model.ModuleHeightMM != 1.0 {
		t.Errorf("expected module height 1mm, got %g", cfg.Model.ModuleHeightMM)
	}
	if cfg.Model.Invert {
		t.Error("expected invert to be false by default")
	}

	if cfg.Mount.Type != "none" {
		t.Errorf("expected mount type 'none', got %s", cfg.Mount.Type)
	}
	if cfg.Mount.HoleDiameterMM != 4.0 {
		t.Errorf("expected hole diameter 4mm, got %g", cfg.Mount.HoleDiameterMM)
	}
	if cfg.Mount.Segments != 16 {
		t.Errorf("expected 16 segments, got %d", cfg.Mount.Segments)
	}

	if cfg.Output.Format != "stl" {
		t.Errorf("expected format 'stl', got %s", cfg.Output.Format)
	}
	if cfg.Output.BaseColor != "white" || cfg.Output.ModuleColor != "black" {
		t.Errorf("unexpected default colors: %s/%s", cfg.Output.BaseColor, cfg.Output.ModuleColor)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "qrforge.yaml")

	yamlContent := `
qr:
  error_correction: "high"
  border: 2

model:
  size_mm: 80
  base_mm: 3
  module_mm: 1.5
  invert: true
  detect_frame: true

mount:
  type: "keychain"
  edge: "west"
  hole_mm: 5

output:
  format: "3mf"
  path: "badge.3mf"
  separate_components: true
  module_color: "#202020"

logging:
  level: "debug"
  log_file: "convert.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.QR.ErrorCorrection != "high" {
		t.Errorf("expected error correction 'high', got %s", cfg.QR.ErrorCorrection)
	}
	if cfg.QR.Border != 2 {
		t.Errorf("expected border 2, got %d", cfg.QR.Border)
	}

	if cfg.Model.SizeMM != 80 {
		t.Errorf("expected size 80mm, got %g", cfg.Model.SizeMM)
	}
	if cfg.Model.BaseHeightMM != 3 {
		t.Errorf("expected base 3mm, got %g", cfg.Model.BaseHeightMM)
	}
	if !cfg.Model.Invert {
		t.Error("expected invert to be true")
	}
	if !cfg.Model.DetectFrame {
		t.Error("expected detect_frame to be true")
	}

	// Untouched keys keep their defaults.
	if cfg.Model.FrameHeightMM != 1.0 {
		t.Errorf("expected frame height default 1mm, got %g", cfg.Model.FrameHeightMM)
	}

	if cfg.Mount.Type != "keychain" {
		t.Errorf("expected mount 'keychain', got %s", cfg.Mount.Type)
	}
	if cfg.Mount.Edge != "west" {
		t.Errorf("expected edge 'west', got %s", cfg.Mount.Edge)
	}
	if cfg.Mount.HoleDiameterMM != 5 {
		t.Errorf("expected hole 5mm, got %g", cfg.Mount.HoleDiameterMM)
	}

	if cfg.Output.Format != "3mf" {
		t.Errorf("expected format '3mf', got %s", cfg.Output.Format)
	}
	if cfg.Output.Path != "badge.3mf" {
		t.Errorf("expected path 'badge.3mf', got %s", cfg.Output.Path)
	}
	if !cfg.Output.SeparateComponents {
		t.Error("expected separate_components to be true")
	}
	if cfg.Output.ModuleColor != "#202020" {
		t.Errorf("expected module color '#202020', got %s", cfg.Output.ModuleColor)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "convert.log" {
		t.Errorf("expected log file 'convert.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
model:
  size_mm: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/qrforge.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "qrforge.yaml")
	if err := os.WriteFile(configPath, []byte("model:\n  size_mm: 60\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find qrforge.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "output flags",
			setup: func() {
				*flagOutput = "tag.3mf"
				*flagFormat = "3mf"
				*flagSeparate = true
			},
			verify: func(cfg *Config) {
				if cfg.Output.Path != "tag.3mf" {
					t.Errorf("expected path 'tag.3mf', got %s", cfg.Output.Path)
				}
				if cfg.Output.Format != "3mf" {
					t.Errorf("expected format '3mf', got %s", cfg.Output.Format)
				}
				if !cfg.Output.SeparateComponents {
					t.Error("expected separate components to be enabled")
				}
			},
			teardown: func() {
				*flagOutput = ""
				*flagFormat = ""
				*flagSeparate = false
			},
		},
		{
			name: "model dimension flags",
			setup: func() {
				*flagSize = 75
				*flagModule = 0.8
			},
			verify: func(cfg *Config) {
				if cfg.Model.SizeMM != 75 {
					t.Errorf("expected size 75, got %g", cfg.Model.SizeMM)
				}
				if cfg.Model.ModuleHeightMM != 0.8 {
					t.Errorf("expected module height 0.8, got %g", cfg.Model.ModuleHeightMM)
				}
				// Untouched dimension stays at the default.
				if cfg.Model.BaseHeightMM != 2.0 {
					t.Errorf("expected base height 2, got %g", cfg.Model.BaseHeightMM)
				}
			},
			teardown: func() {
				*flagSize = 0
				*flagModule = 0
			},
		},
		{
			name: "mount flags",
			setup: func() {
				*flagMount = "keychain"
				*flagMountEdge = "east"
				*flagHole = 6
			},
			verify: func(cfg *Config) {
				if cfg.Mount.Type != "keychain" {
					t.Errorf("expected mount 'keychain', got %s", cfg.Mount.Type)
				}
				if cfg.Mount.Edge != "east" {
					t.Errorf("expected edge 'east', got %s", cfg.Mount.Edge)
				}
				if cfg.Mount.HoleDiameterMM != 6 {
					t.Errorf("expected hole 6mm, got %g", cfg.Mount.HoleDiameterMM)
				}
			},
			teardown: func() {
				*flagMount = ""
				*flagMountEdge = ""
				*flagHole = 0
			},
		},
		{
			name: "border zero is a valid override",
			setup: func() {
				*flagBorder = 0
			},
			verify: func(cfg *Config) {
				if cfg.QR.Border != 0 {
					t.Errorf("expected border 0, got %d", cfg.QR.Border)
				}
			},
			teardown: func() {
				*flagBorder = -1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "qrforge.yaml")

	yamlContent := `
model:
  size_mm: 60
  base_mm: 4
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagSize = 100
	defer func() {
		*flagConfig = ""
		*flagSize = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Size comes from the flag, base height from the file.
	if cfg.Model.SizeMM != 100 {
		t.Errorf("expected size 100 from flag, got %g", cfg.Model.SizeMM)
	}
	if cfg.Model.BaseHeightMM != 4 {
		t.Errorf("expected base 4 from file, got %g", cfg.Model.BaseHeightMM)
	}
}
