package config

const (
	defaultDataDir         = "~/.local/share/sift"
	defaultLogDir          = "~/.local/share/sift/logs"
	defaultLibraryDir      = "~/Pictures"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultScanBatchSize   = 50
	defaultScanInterval    = 0
	defaultMinConfidence   = 0.10
	defaultTopK            = 3
	defaultClassifyTimeout = 30
	defaultPendingLimit    = 20
	defaultClassifierCmd   = "sift-classify"
)

func defaultExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".heic", ".webp"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDirs: []string{defaultLibraryDir},
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
		},
		Scan: Scan{
			BatchSize:  defaultScanBatchSize,
			Interval:   defaultScanInterval,
			Extensions: defaultExtensions(),
		},
		Classifier: Classifier{
			Command:       defaultClassifierCmd,
			MinConfidence: defaultMinConfidence,
			TopK:          defaultTopK,
			Timeout:       defaultClassifyTimeout,
		},
		Triage: Triage{
			PendingLimit: defaultPendingLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
