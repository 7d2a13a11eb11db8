// Package config loads CLI settings from the environment, an optional .env
// file and command-line flags, in that order of increasing precedence.
package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"BwClient/internal/secret"
)

// DefaultBaseURL is the address `bw serve` listens on by default.
const DefaultBaseURL = "http://localhost:8087"

type Config struct {
	// BaseURL of the daemon. A bare host:port gets an http:// scheme.
	BaseURL string `env:"BW_BASE_URL"`
	// Password is the master password. Never set from a flag; when empty
	// the unlock command prompts for it.
	Password secret.Value  `env:"BW_PASSWORD"`
	Timeout  time.Duration `env:"BW_TIMEOUT" envDefault:"30s"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"info"`
	Version  bool          `env:"-"` // flag only
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// env values become the flag defaults, so an explicit flag wins
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "daemon address (host:port or full URL)")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP timeout per request")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "show version and exit")

	flag.Parse()

	cfg.BaseURL = NormalizeBaseURL(cfg.BaseURL)
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg
}

// NormalizeBaseURL applies the default and adds a scheme to host:port.
func NormalizeBaseURL(u string) string {
	switch {
	case u == "":
		return DefaultBaseURL
	case hostPortRe.MatchString(u):
		return "http://" + u
	}
	return u
}
