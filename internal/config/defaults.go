package config

const (
	defaultBaseURL          = "http://localhost:8000/api/v1"
	defaultRequestTimeout   = 10
	defaultStateDir         = "~/.local/share/recall"
	defaultLogDir           = "~/.local/share/recall/logs"
	defaultPollInterval     = 2
	defaultGraceDelay       = 2
	defaultReviewDictionary = 1
	defaultReviewLimit      = 20
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			BaseURL:        defaultBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Upload: Upload{
			PollInterval: defaultPollInterval,
			GraceDelay:   defaultGraceDelay,
		},
		Review: Review{
			DictionaryID: defaultReviewDictionary,
			Limit:        defaultReviewLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
