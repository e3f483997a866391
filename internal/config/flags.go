package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagData   = flag.String("data", "", "Extra resource directory (searched first)")
	flagPack   = flag.String("pack", "", "Extra .pk3 pack (searched first)")
	flagWatch  = flag.Bool("watch", false, "Rebuild animation sets when resources change")
	flagLog    = flag.String("log", "", "Log file path")
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
	if *flagData != "" {
		cfg.Data.SearchPaths = append(cfg.Data.SearchPaths, *flagData)
	}
	if *flagPack != "" {
		cfg.Data.Archives = append(cfg.Data.Archives, *flagPack)
	}
	if *flagWatch {
		cfg.Watch.Enabled = true
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
}
