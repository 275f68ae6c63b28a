package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jessequinn/xc-inventory-cli/internal/logging"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc"
)

type (
	// Config is the full CLI configuration
	Config struct {
		Tenant    Tenant    `yaml:"tenant"`
		Log       Log       `yaml:"logger"`
		Inventory Inventory `yaml:"inventory"`
		Diff      Diff      `yaml:"diff"`
	}

	// Tenant identifies the XC API and its credential
	Tenant struct {
		Name              string  `yaml:"name" env:"XC_TENANT"`
		APIToken          string  `yaml:"api_token" env:"XC_API_TOKEN"`
		APIRoot           string  `yaml:"api_root" env:"XC_API_ROOT"`
		TimeoutSeconds    int     `yaml:"timeout_seconds" env:"XC_TIMEOUT_SECONDS"`
		RequestsPerSecond float64 `yaml:"requests_per_second" env:"XC_REQUESTS_PER_SECOND"`
	}

	// Log configures the zap logger
	Log struct {
		Level  string `yaml:"log-level" env:"LOG_LEVEL"`
		Format string `yaml:"log-format" env:"LOG_FORMAT"`
	}

	// Inventory holds enumeration defaults
	Inventory struct {
		Kinds   []string `yaml:"kinds"`
		Exclude []string `yaml:"exclude"`
	}

	// Diff holds baseline diff defaults
	Diff struct {
		Baseline string `yaml:"baseline" env:"XC_BASELINE_NAMESPACE"`
		Kind     string `yaml:"kind"`
	}
)

// NewConfig builds the configuration from defaults, then the YAML file at path, then the environment.
// A missing file is only an error when required is set.
func NewConfig(path string, required bool) (*Config, error) {
	cfg := &Config{}

	cfg.Log.Level = "info"
	cfg.Log.Format = string(logging.FormatConsole)
	cfg.Diff.Baseline = "shared"
	cfg.Diff.Kind = string(xc.KindAppFirewall)

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("config error: %w", err)
			}
			return cfg, nil
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}

// ClientConfig converts the tenant section into an xc.Config
func (c *Config) ClientConfig() xc.Config {
	return xc.Config{
		TenantName:        c.Tenant.Name,
		Credential:        c.Tenant.APIToken,
		APIRoot:           c.Tenant.APIRoot,
		TimeoutSeconds:    c.Tenant.TimeoutSeconds,
		RequestsPerSecond: c.Tenant.RequestsPerSecond,
	}
}

// LoggerConfig converts the log section into a logging.Config
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = logging.Format(c.Log.Format)
	return cfg
}
