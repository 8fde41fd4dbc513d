package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	// APIURL is the backend base URL; every endpoint path is built by
	// concatenating the namespace segment onto it.
	APIURL string `env:"API_URL"`

	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT"        envDefault:"10s"`
	HTTPRetryAttempts int           `env:"HTTP_RETRY_ATTEMPTS" envDefault:"3"`

	// SessionFile overrides the default session location under the user
	// config dir.
	SessionFile string `env:"SESSION_FILE"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	if c.APIURL == "" {
		return Config{}, errors.New("API_URL is required")
	}

	c.APIURL = strings.TrimRight(c.APIURL, "/")

	if c.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve user config dir: %w", err)
		}

		c.SessionFile = filepath.Join(dir, "desempeno", "session.json")
	}

	return c, nil
}
