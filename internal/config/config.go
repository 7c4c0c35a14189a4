// Package config handles converter configuration loading and management.
package config

import "github.com/Faultbox/fbxgeom/pkg/geometry"

// Config holds all converter settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ImportConfig selects which attribute layers the importer reads.
type ImportConfig struct {
	Normals   bool `yaml:"normals"`
	Tangents  bool `yaml:"tangents"`
	Colors    bool `yaml:"colors"`
	UVs       bool `yaml:"uvs"`
	Materials bool `yaml:"materials"`
}

// Options converts the toggles into importer options.
func (c ImportConfig) Options() geometry.Options {
	return geometry.Options{
		Normals:   c.Normals,
		Tangents:  c.Tangents,
		Colors:    c.Colors,
		UVs:       c.UVs,
		Materials: c.Materials,
	}
}

// ExportConfig holds output settings.
type ExportConfig struct {
	Format string `yaml:"format"` // "gltf" or "obj"
	OutDir string `yaml:"out_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Normals:   true,
			Tangents:  true,
			Colors:    true,
			UVs:       true,
			Materials: true,
		},
		Export: ExportConfig{
			Format: "gltf",
			OutDir: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
