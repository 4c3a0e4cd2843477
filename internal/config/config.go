package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingURLSuffix is returned when the required backend URL suffix is not
// configured. The suffix is the path prefix the backend mounts its API under,
// so without it no request URL can be built.
var ErrMissingURLSuffix = errors.New("backend_url_suffix is not set")

// Config holds the client configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BackendURLSuffix string `mapstructure:"backend_url_suffix"`
	ProfilesFile     string `mapstructure:"profiles_file"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	UploadTimeoutSeconds  int64         `mapstructure:"upload_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	UploadTimeout         time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
// A missing backend URL suffix is a fatal configuration error surfaced here,
// at startup, rather than on first use of the client.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "appdeck-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("profiles_file", "./configs/profiles.yaml")
	v.SetDefault("request_timeout_seconds", 600) // metadata operations
	v.SetDefault("upload_timeout_seconds", 1200) // image builds run much longer

	v.AutomaticEnv()
	// No default exists for the suffix, so bind it explicitly or Unmarshal
	// will never see the env value.
	_ = v.BindEnv("backend_url_suffix")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BackendURLSuffix = strings.Trim(strings.TrimSpace(cfg.BackendURLSuffix), "/")
	if cfg.BackendURLSuffix == "" {
		return nil, fmt.Errorf("load config: %w (set BACKEND_URL_SUFFIX)", ErrMissingURLSuffix)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	if cfg.UploadTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid upload_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	cfg.UploadTimeout = time.Duration(cfg.UploadTimeoutSeconds) * time.Second

	return &cfg, nil
}
