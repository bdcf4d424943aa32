package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App holds every runtime knob the server reads. Secrets for token
// signing stay in the environment and are read by the utils package
// directly so tests can override them per test.
type App struct {
	Port string `envconfig:"PORT" default:"4000"`

	// DB
	DatabaseURL string `envconfig:"DB_CONNECTION_STRING" required:"true"`

	// Redis (refresh token allowlist)
	RedisURL string `envconfig:"REDIS_URL" default:"localhost:6379"`

	// Payment proof storage
	UploadsDir string `envconfig:"UPLOADS_DIR" default:"uploads"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
