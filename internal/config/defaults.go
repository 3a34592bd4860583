package config

const (
	defaultBaseURL              = "https://www.vinted.fr"
	defaultCurrency             = "EUR"
	defaultSearchTimeoutSeconds = 15
	defaultNotifyTimeoutSeconds = 10
	defaultPollSeconds          = 90
	defaultMaxItemAgeMinutes    = 60
	defaultPerPage              = 30
	defaultStateDir             = "~/.local/share/chine"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults. No searches
// are configured by default; the sample config ships a working set.
func Default() Config {
	return Config{
		Telegram: Telegram{
			RequestTimeout: defaultNotifyTimeoutSeconds,
		},
		Vinted: Vinted{
			BaseURL:        defaultBaseURL,
			Currency:       defaultCurrency,
			RequestTimeout: defaultSearchTimeoutSeconds,
		},
		Watch: Watch{
			PollSeconds:       defaultPollSeconds,
			MaxItemAgeMinutes: defaultMaxItemAgeMinutes,
			PerPage:           defaultPerPage,
			StateDir:          defaultStateDir,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
