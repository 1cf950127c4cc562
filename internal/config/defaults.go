package config

const (
	defaultDataDir            = "~/.local/share/beacon"
	defaultLogDir             = "~/.local/share/beacon/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultNtfyRequestTimeout = 10
	defaultRetentionDays      = 14
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Desktop: Desktop{
			Enabled: true,
		},
		Ntfy: Ntfy{
			RequestTimeout: defaultNtfyRequestTimeout,
			Errors:         true,
		},
		History: History{
			RetentionDays: defaultRetentionDays,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
