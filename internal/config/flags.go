package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagOut          = flag.String("out", "", "Output directory")
	flagNoScenes     = flag.Bool("no-scenes", false, "Skip .scene files")
	flagNoAnimations = flag.Bool("no-animations", false, "Skip .animation files")
	flagWatch        = flag.Bool("watch", false, "Re-export when the document changes")
	flagLogFile      = flag.String("log-file", "", "Also log to this file, with rotation")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
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
	if *flagOut != "" {
		cfg.Export.OutputDir = *flagOut
	}
	if *flagNoScenes {
		cfg.Export.Scenes = false
	}
	if *flagNoAnimations {
		cfg.Export.Animations = false
	}
	if *flagWatch {
		cfg.Export.Watch = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
