package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.temporal.io/sdk/client"
)

// ConfigFileEnv names the optional YAML file layered under the environment.
const ConfigFileEnv = "CONFIG_FILE"

// Config carries settings for the API and worker processes.
type Config struct {
	Port                   string `koanf:"port"`
	PostgresDSN            string `koanf:"postgres_dsn"`
	TemporalAddress        string `koanf:"temporal_address"`
	TemporalNamespace      string `koanf:"temporal_namespace"`
	Environment            string `koanf:"environment"`
	LogLevel               string `koanf:"log_level"`
	TraceExporter          string `koanf:"otel_traces_exporter"`
	ShutdownTimeoutSeconds int    `koanf:"shutdown_timeout_seconds"`

	TemporalDisabled bool `koanf:"-"`
	MigrateOnStart   bool `koanf:"-"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		Port:                   "8080",
		TemporalAddress:        client.DefaultHostPort,
		TemporalNamespace:      client.DefaultNamespace,
		Environment:            "local",
		LogLevel:               "info",
		TraceExporter:          "otlp",
		ShutdownTimeoutSeconds: 10,
	}
}

// LoadConfig layers defaults, the optional CONFIG_FILE YAML, and environment variables, then validates.
// Environment keys are the upper-case form of the YAML keys, e.g. POSTGRES_DSN for postgres_dsn.
func LoadConfig() (Config, error) {
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	envProvider := env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.TemporalDisabled = isTruthy(k.String("temporal_disabled"))
	cfg.MigrateOnStart = isTruthy(k.String("migrate_on_start"))
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	c.PostgresDSN = strings.TrimSpace(c.PostgresDSN)
	c.TemporalAddress = strings.TrimSpace(c.TemporalAddress)
	c.TemporalNamespace = strings.TrimSpace(c.TemporalNamespace)
	c.Environment = strings.TrimSpace(c.Environment)
}

// Validate checks basic constraints.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be an integer between 1 and 65535")
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be a positive integer")
	}
	if !c.TemporalDisabled && (c.TemporalAddress == "" || c.TemporalNamespace == "") {
		return fmt.Errorf("TEMPORAL_ADDRESS and TEMPORAL_NAMESPACE must be set unless TEMPORAL_DISABLED")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// ShutdownTimeout bounds graceful shutdown.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
