package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIURL is the base URL of the Kommer backend.
	APIURL string `env:"KOMMER_API_URL, default=http://localhost:5083"`
	// HTTPTimeout bounds every backend call.
	HTTPTimeout time.Duration `env:"KOMMER_HTTP_TIMEOUT, default=5s"`
	// TokenFile is where the bearer token is persisted between runs.
	// Defaults to ~/.config/kommer/token when empty.
	TokenFile string `env:"KOMMER_TOKEN_FILE"`

	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile()
	}
	return &cfg
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "kommer-token"
	}
	return filepath.Join(dir, "kommer", "token")
}
