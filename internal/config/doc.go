// Package config loads, normalizes, and validates the chine configuration.
//
// Configuration lives in a TOML file (default ~/.config/chine/config.toml,
// with a chine.toml in the working directory as fallback). Telegram
// credentials and the two polling knobs the original deployment exposed can
// also be supplied through environment variables, which take effect when
// the corresponding file value is unset. The monitored searches are plain
// [[searches]] blocks; the embedded sample ships a working set.
package config
