// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Export    ExportConfig    `yaml:"export"`
	Animation AnimationConfig `yaml:"animation"`
	GLTF      GLTFConfig      `yaml:"gltf"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ExportConfig controls what is written and where.
type ExportConfig struct {
	OutputDir  string `yaml:"output_dir"` // "~" is expanded to the home directory
	Scenes     bool   `yaml:"scenes"`
	Animations bool   `yaml:"animations"`
	Watch      bool   `yaml:"watch"` // re-export whenever the document changes
}

// AnimationConfig holds animation aggregation settings.
type AnimationConfig struct {
	ReorderByFrequency bool `yaml:"reorder_by_frequency"`
}

// GLTFConfig holds settings for documents imported from glTF files.
type GLTFConfig struct {
	AssetScene  string `yaml:"asset_scene"` // empty means the file's base name
	ResolutionX int    `yaml:"resolution_x"`
	ResolutionY int    `yaml:"resolution_y"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			OutputDir:  "res",
			Scenes:     true,
			Animations: true,
		},
		Animation: AnimationConfig{
			ReorderByFrequency: true,
		},
		GLTF: GLTFConfig{
			ResolutionX: 1920,
			ResolutionY: 1080,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
