package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagAssets      = flag.String("assets", "", "Assets root directory")
	flagNormalize   = flag.Bool("normalize", false, "Normalize synthesized normals")
	flagNoMaterials = flag.Bool("no-materials", false, "Do not load the mtllib of a model")
	flagLogFile     = flag.String("log-file", "", "Write logs to this file as well")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
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
	if *flagAssets != "" {
		cfg.Assets.Root = *flagAssets
	}
	if *flagNormalize {
		cfg.Mesh.NormalizeNormals = true
	}
	if *flagNoMaterials {
		cfg.Mesh.LoadMaterials = false
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
