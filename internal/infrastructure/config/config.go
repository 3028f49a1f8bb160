package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the HECO interval importer.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Importer ImporterConfig `yaml:"importer"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	History  HistoryConfig  `yaml:"history"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig contains site-specific information.
type SiteConfig struct {
	ID string `yaml:"id"`

	// Timezone is the IANA zone name applied to every parsed timestamp.
	// HECO exports carry civil Hawaii time with no zone marker, so this
	// is a single ingestion-wide setting, never per-row.
	Timezone string `yaml:"timezone"`
}

// ImporterConfig contains the watch-directory and sweep settings.
type ImporterConfig struct {
	// IncomingDir is polled for new export files.
	IncomingDir string `yaml:"incoming_dir"`

	// ProcessedDir receives files whose samples were written successfully.
	ProcessedDir string `yaml:"processed_dir"`

	// FailedDir receives files that could not be parsed or written.
	FailedDir string `yaml:"failed_dir"`

	// PollInterval is the pause between directory sweeps (seconds).
	PollInterval int `yaml:"poll_interval"`
}

// InfluxDBConfig contains InfluxDB connection and point-shaping settings.
type InfluxDBConfig struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`

	// Measurement is the measurement name each sample is written under.
	Measurement string `yaml:"measurement"`

	// SourceTag is the value of the "source" tag on every point.
	SourceTag string `yaml:"source_tag"`
}

// MQTTConfig contains settings for the optional import-outcome notifier.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// HistoryConfig contains settings for the optional SQLite import ledger.
type HistoryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: HECO_SECTION_KEY
// For example: HECO_INFLUXDB_TOKEN, HECO_IMPORTER_INCOMING_DIR
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ID:       "heco-home",
			Timezone: "Pacific/Honolulu",
		},
		Importer: ImporterConfig{
			IncomingDir:  "/incoming",
			ProcessedDir: "/processed",
			FailedDir:    "/failed",
			PollInterval: 10,
		},
		InfluxDB: InfluxDBConfig{
			URL:         "http://localhost:8086",
			Org:         "home",
			Bucket:      "energy",
			Measurement: "heco_interval",
			SourceTag:   "heco",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "heco-importer",
			},
			QoS: 1,
		},
		History: HistoryConfig{
			Path:        "./data/history.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: HECO_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Importer
	if v := os.Getenv("HECO_IMPORTER_INCOMING_DIR"); v != "" {
		cfg.Importer.IncomingDir = v
	}
	if v := os.Getenv("HECO_IMPORTER_PROCESSED_DIR"); v != "" {
		cfg.Importer.ProcessedDir = v
	}
	if v := os.Getenv("HECO_IMPORTER_FAILED_DIR"); v != "" {
		cfg.Importer.FailedDir = v
	}

	// InfluxDB
	if v := os.Getenv("HECO_INFLUXDB_URL"); v != "" {
		cfg.InfluxDB.URL = v
	}
	if v := os.Getenv("HECO_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
	if v := os.Getenv("HECO_INFLUXDB_ORG"); v != "" {
		cfg.InfluxDB.Org = v
	}
	if v := os.Getenv("HECO_INFLUXDB_BUCKET"); v != "" {
		cfg.InfluxDB.Bucket = v
	}

	// MQTT
	if v := os.Getenv("HECO_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("HECO_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("HECO_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// History
	if v := os.Getenv("HECO_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Site validation
	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}
	if c.Site.Timezone == "" {
		errs = append(errs, "site.timezone is required")
	}

	// Importer validation
	if c.Importer.IncomingDir == "" {
		errs = append(errs, "importer.incoming_dir is required")
	}
	if c.Importer.ProcessedDir == "" {
		errs = append(errs, "importer.processed_dir is required")
	}
	if c.Importer.FailedDir == "" {
		errs = append(errs, "importer.failed_dir is required")
	}
	if c.Importer.PollInterval < 1 {
		errs = append(errs, "importer.poll_interval must be at least 1 second")
	}

	// InfluxDB validation
	if c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required")
	}
	if c.InfluxDB.Token == "" {
		errs = append(errs, "influxdb.token is required (set HECO_INFLUXDB_TOKEN environment variable)")
	}
	if c.InfluxDB.Org == "" {
		errs = append(errs, "influxdb.org is required")
	}
	if c.InfluxDB.Bucket == "" {
		errs = append(errs, "influxdb.bucket is required")
	}
	if c.InfluxDB.Measurement == "" {
		errs = append(errs, "influxdb.measurement is required")
	}

	// MQTT validation (only when the notifier is enabled)
	if c.MQTT.Enabled {
		if c.MQTT.Broker.Host == "" {
			errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
		}
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1, or 2")
		}
	}

	// History validation (only when the ledger is enabled)
	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, "history.path is required when history is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetPollInterval returns the sweep pause as a Duration.
func (c *Config) GetPollInterval() time.Duration {
	return time.Duration(c.Importer.PollInterval) * time.Second
}
