package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type SimStore struct {
	Kind string `env:"SIM_STORE" envDefault:"file"`
	Path string `env:"SIM_STORE_PATH" envDefault:"./_simdata"`
}

type Config struct {
	BackendURL   string        `env:"BACKEND_URL" envDefault:"http://localhost:8000"`
	ListenAddr   string        `env:"LISTEN_ADDR" envDefault:"127.0.0.1:5555"`
	LogLevel     string        `env:"LOGGER_LEVEL" envDefault:"debug"`
	SentryDSN    string        `env:"SENTRY_DSN" envDefault:""`
	Recaptcha    string        `env:"GOOGLE_RECAPTCHA_V3_SECRET" envDefault:""`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"1m"`
	HTTPProxyURL string        `env:"HTTP_PROXY_URL" envDefault:""`

	Sim SimStore
}

// Load reads .env (when present) and then the process environment.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parse env config")
	}
	return cfg, nil
}
