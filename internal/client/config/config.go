package config

import "time"

// Config holds runtime settings for the PIR editor CLI.
//
// Fields:
//   - EndpointURL: base URL of the sheet store web endpoint.
//   - DocumentKey: key of the document to open on startup; may be empty,
//     in which case the editor asks for one interactively.
//   - RequestTimeout: upper bound on every remote call.
type Config struct {
	EndpointURL    string
	DocumentKey    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EndpointURL = "http://127.0.0.1:8080/api"
	c.DocumentKey = ""
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
