package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile     = flag.String("log-file", "", "Write logs to file")
	flagFormat      = flag.String("format", "", "Export format (gltf or obj)")
	flagOut         = flag.String("out", "", "Output directory")
	flagNoNormals   = flag.Bool("no-normals", false, "Skip the normal layer")
	flagNoTangents  = flag.Bool("no-tangents", false, "Skip the tangent layer")
	flagNoColors    = flag.Bool("no-colors", false, "Skip the vertex color layer")
	flagNoUVs       = flag.Bool("no-uvs", false, "Skip the UV layer")
	flagNoMaterials = flag.Bool("no-materials", false, "Skip the material layer")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagFormat != "" {
		cfg.Export.Format = *flagFormat
	}
	if *flagOut != "" {
		cfg.Export.OutDir = *flagOut
	}
	if *flagNoNormals {
		cfg.Import.Normals = false
	}
	if *flagNoTangents {
		cfg.Import.Tangents = false
	}
	if *flagNoColors {
		cfg.Import.Colors = false
	}
	if *flagNoUVs {
		cfg.Import.UVs = false
	}
	if *flagNoMaterials {
		cfg.Import.Materials = false
	}
}
