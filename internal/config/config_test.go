package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test export defaults
	if cfg.Export.OutputDir != "res" {
		t.Errorf("expected output dir 'res', got %s", cfg.Export.OutputDir)
	}
	if !cfg.Export.Scenes || !cfg.Export.Animations {
		t.Error("expected scenes and animations to be enabled by default")
	}
	if cfg.Export.Watch {
		t.Error("expected watch to be off by default")
	}

	// Test animation defaults
	if !cfg.Animation.ReorderByFrequency {
		t.Error("expected reorder_by_frequency to be true by default")
	}

	// Test glTF defaults
	if cfg.GLTF.ResolutionX != 1920 || cfg.GLTF.ResolutionY != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.GLTF.ResolutionX, cfg.GLTF.ResolutionY)
	}
	if cfg.GLTF.AssetScene != "" {
		t.Errorf("expected empty asset scene, got %s", cfg.GLTF.AssetScene)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
export:
  output_dir: build/res
  scenes: false

animation:
  reorder_by_frequency: false

gltf:
  asset_scene: shared
  resolution_x: 1280

logging:
  level: debug
  log_file: export.log
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.OutputDir != "build/res" {
		t.Errorf("expected output dir build/res, got %s", cfg.Export.OutputDir)
	}
	if cfg.Export.Scenes {
		t.Error("expected scenes to be disabled")
	}
	if !cfg.Export.Animations {
		t.Error("expected animations to keep their default")
	}
	if cfg.Animation.ReorderByFrequency {
		t.Error("expected reorder_by_frequency to be disabled")
	}
	if cfg.GLTF.AssetScene != "shared" {
		t.Errorf("expected asset scene 'shared', got %s", cfg.GLTF.AssetScene)
	}
	if cfg.GLTF.ResolutionX != 1280 || cfg.GLTF.ResolutionY != 1080 {
		t.Errorf("expected 1280x1080, got %dx%d", cfg.GLTF.ResolutionX, cfg.GLTF.ResolutionY)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "export.log" {
		t.Errorf("expected log file 'export.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
export:
  scenes: not a bool
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
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
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
	if !strings.Contains(dir, "gp3d-export") {
		t.Errorf("ConfigDir should be application specific, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "gp3dexport.yaml")
	if err := os.WriteFile(configPath, []byte("export:\n  scenes: false\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find gp3dexport.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "out flag",
			setup: func() { *flagOut = "/tmp/export" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.OutputDir != "/tmp/export" {
					t.Errorf("expected output dir /tmp/export, got %s", cfg.Export.OutputDir)
				}
			},
			teardown: func() { *flagOut = "" },
		},
		{
			name: "skip flags",
			setup: func() {
				*flagNoScenes = true
				*flagNoAnimations = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.Scenes || cfg.Export.Animations {
					t.Error("expected scenes and animations to be disabled")
				}
			},
			teardown: func() {
				*flagNoScenes = false
				*flagNoAnimations = false
			},
		},
		{
			name:  "watch flag",
			setup: func() { *flagWatch = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Export.Watch {
					t.Error("expected watch to be enabled")
				}
			},
			teardown: func() { *flagWatch = false },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "export.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "export.log" {
					t.Errorf("expected log file export.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
export:
  output_dir: from-file
  animations: false
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagOut = "from-flag"
	defer func() {
		*flagConfig = ""
		*flagOut = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Output dir should be from flag, not file
	if cfg.Export.OutputDir != "from-flag" {
		t.Errorf("expected output dir from-flag, got %s", cfg.Export.OutputDir)
	}

	// Animations should be from file since no flag override
	if cfg.Export.Animations {
		t.Error("expected animations disabled from file")
	}
}

func TestLoadExpandsHome(t *testing.T) {
	*flagOut = "~/gp3d/res"
	defer func() { *flagOut = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if strings.HasPrefix(cfg.Export.OutputDir, "~") {
		t.Errorf("expected ~ to be expanded, got %s", cfg.Export.OutputDir)
	}
	if !strings.HasSuffix(cfg.Export.OutputDir, filepath.Join("gp3d", "res")) {
		t.Errorf("unexpected output dir %s", cfg.Export.OutputDir)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Export.OutputDir = "custom"
	cfg.Animation.ReorderByFrequency = false
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", *loaded, *cfg)
	}
}
