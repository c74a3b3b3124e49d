// Package config resolves the parking-lot settings.
//
// Viper stays contained in this package; the rest of the code receives an
// explicit Config. Sources are resolved in this order: flags > env > config
// file > defaults.
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyServiceName     = "service-name"
	KeyEnvironment     = "environment"
	KeyLogLevel        = "log-level"
	KeyLogFormat       = "log-format"
	KeyTelemetry       = "telemetry-enabled"
	KeyOTLPEndpoint    = "otlp-endpoint"
	KeyMetricsInterval = "metrics-interval"
	KeyDiagnosticsAddr = "diagnostics-addr"
	KeyFile            = "file"
)

type Config struct {
	ServiceName string
	Environment string
	Log         LogConfig
	Telemetry   TelemetryConfig
	// DiagnosticsAddr is the listen address of the health/metrics server.
	// Empty disables it.
	DiagnosticsAddr string
	// File is read instead of stdin when set.
	File string
}

type LogConfig struct {
	Level  string
	Format string
}

type TelemetryConfig struct {
	Enabled         bool
	OTLPEndpoint    string
	MetricsInterval time.Duration
}

// Init sets defaults, environment bindings and config file search paths.
func Init() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.parking-lot")
	viper.AddConfigPath(".")

	viper.SetDefault(KeyServiceName, "parking-lot")
	viper.SetDefault(KeyEnvironment, "development")
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "console")
	viper.SetDefault(KeyTelemetry, false)
	viper.SetDefault(KeyOTLPEndpoint, "http://localhost:4318")
	viper.SetDefault(KeyMetricsInterval, 5*time.Second)
	viper.SetDefault(KeyDiagnosticsAddr, "")
	viper.SetDefault(KeyFile, "")

	viper.SetEnvPrefix("PARKING_LOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// The standard OTel variables win over our own prefix.
	if err := viper.BindEnv(KeyServiceName, "OTEL_SERVICE_NAME", "PARKING_LOT_SERVICE_NAME"); err != nil {
		return fmt.Errorf("failed to bind %s: %w", KeyServiceName, err)
	}
	if err := viper.BindEnv(KeyOTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT", "PARKING_LOT_OTLP_ENDPOINT"); err != nil {
		return fmt.Errorf("failed to bind %s: %w", KeyOTLPEndpoint, err)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// Load reads all sources and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: viper.GetString(KeyServiceName),
		Environment: viper.GetString(KeyEnvironment),
		Log: LogConfig{
			Level:  viper.GetString(KeyLogLevel),
			Format: viper.GetString(KeyLogFormat),
		},
		Telemetry: TelemetryConfig{
			Enabled:         viper.GetBool(KeyTelemetry),
			OTLPEndpoint:    viper.GetString(KeyOTLPEndpoint),
			MetricsInterval: viper.GetDuration(KeyMetricsInterval),
		},
		DiagnosticsAddr: viper.GetString(KeyDiagnosticsAddr),
		File:            viper.GetString(KeyFile),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures config is sane.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service-name must not be empty")
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("invalid log-level: %s", c.Log.Level)
	}

	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log-format: %s (must be console or json)", c.Log.Format)
	}

	if c.Telemetry.Enabled && c.Telemetry.OTLPEndpoint == "" {
		return fmt.Errorf("otlp-endpoint is required when telemetry is enabled")
	}

	if c.Telemetry.MetricsInterval <= 0 {
		return fmt.Errorf("invalid metrics-interval: %s", c.Telemetry.MetricsInterval)
	}

	if c.DiagnosticsAddr != "" {
		if _, _, err := net.SplitHostPort(c.DiagnosticsAddr); err != nil {
			return fmt.Errorf("invalid diagnostics-addr %q: %w", c.DiagnosticsAddr, err)
		}
	}

	return nil
}

// Display renders the effective configuration for `parking-lot config`.
func Display(cfg *Config) string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "(not found)"
	}

	diagnostics := cfg.DiagnosticsAddr
	if diagnostics == "" {
		diagnostics = "(disabled)"
	}

	return fmt.Sprintf(`Configuration:
  service-name:       %s
  environment:        %s
  log-level:          %s
  log-format:         %s
  diagnostics-addr:   %s

Telemetry:
  enabled:            %t
  otlp-endpoint:      %s
  metrics-interval:   %s

Sources:
  Config file:        %s
  Environment:        PARKING_LOT_*, OTEL_SERVICE_NAME, OTEL_EXPORTER_OTLP_ENDPOINT
  Flags:              (per command)
`,
		cfg.ServiceName,
		cfg.Environment,
		cfg.Log.Level,
		cfg.Log.Format,
		diagnostics,
		cfg.Telemetry.Enabled,
		cfg.Telemetry.OTLPEndpoint,
		cfg.Telemetry.MetricsInterval,
		configFile,
	)
}

// BindFlags binds command-line flags to their keys. Flags that are not set
// fall through to env, file and defaults.
func BindFlags(fs *pflag.FlagSet) error {
	for _, key := range []string{
		KeyServiceName,
		KeyEnvironment,
		KeyLogLevel,
		KeyLogFormat,
		KeyTelemetry,
		KeyOTLPEndpoint,
		KeyMetricsInterval,
		KeyDiagnosticsAddr,
		KeyFile,
	} {
		flag := fs.Lookup(key)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}
