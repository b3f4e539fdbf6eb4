// Package config assembles tool configuration from environment variables,
// an optional .env file, and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultTimeout is applied when AKIPS_TIMEOUT is unset or not a positive
// number of seconds.
const DefaultTimeout = 60 * time.Second

// ErrMissing is wrapped by Load when a required setting is absent.
var ErrMissing = errors.New("required configuration missing")

// Config is an immutable snapshot of the resolved configuration. It is
// assembled once at startup and passed by value from there on.
type Config struct {
	BaseURL  string        // AKIPS server base URL
	Password string        // api-ro account password
	CACert   string        // path to a CA bundle; empty disables TLS verification
	Timeout  time.Duration // HTTP request timeout
	LogLevel string        // DEBUG, INFO, WARNING, ERROR
	LogFile  string        // optional log file path
}

// Load resolves configuration with the following precedence, lowest first:
// built-in defaults, YAML config file, environment variables. A .env file in
// the working directory is merged into the environment before anything is
// read. cfgFile selects an explicit config file; when empty,
// $HOME/.mac2switchport.yaml is used if present. A missing or unreadable
// config file is only an error when cfgFile was given explicitly.
func Load(cfgFile string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("AKIPS")
	v.AutomaticEnv()
	v.SetDefault("timeout", 60)
	v.SetDefault("log_level", "WARNING")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %v", cfgFile, err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".mac2switchport")
		v.SetConfigType("yaml")
		_ = v.ReadInConfig()
	}

	cfg := Config{
		BaseURL:  strings.TrimSpace(v.GetString("url")),
		Password: v.GetString("api_ro_password"),
		CACert:   strings.TrimSpace(v.GetString("cert")),
		LogLevel: v.GetString("log_level"),
		LogFile:  v.GetString("log_file"),
	}

	seconds := v.GetInt("timeout")
	if seconds <= 0 {
		cfg.Timeout = DefaultTimeout
	} else {
		cfg.Timeout = time.Duration(seconds) * time.Second
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("%w: AKIPS_URL is required in .env or environment", ErrMissing)
	}
	if cfg.Password == "" {
		return Config{}, fmt.Errorf("%w: AKIPS_API_RO_PASSWORD is required in .env or environment", ErrMissing)
	}
	return cfg, nil
}
