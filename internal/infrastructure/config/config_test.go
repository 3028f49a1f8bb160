package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
site:
  id: "test-site"
  timezone: "Pacific/Honolulu"
importer:
  incoming_dir: "/tmp/incoming"
  processed_dir: "/tmp/processed"
  failed_dir: "/tmp/failed"
  poll_interval: 5
influxdb:
  url: "http://localhost:8086"
  token: "test-token"
  org: "home"
  bucket: "energy"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Site.ID != "test-site" {
		t.Errorf("Site.ID = %q, want %q", cfg.Site.ID, "test-site")
	}

	if cfg.Importer.IncomingDir != "/tmp/incoming" {
		t.Errorf("Importer.IncomingDir = %q, want %q", cfg.Importer.IncomingDir, "/tmp/incoming")
	}

	if cfg.Importer.PollInterval != 5 {
		t.Errorf("Importer.PollInterval = %d, want 5", cfg.Importer.PollInterval)
	}

	// Defaults preserved for fields the file omits
	if cfg.InfluxDB.Measurement != "heco_interval" {
		t.Errorf("InfluxDB.Measurement = %q, want default %q", cfg.InfluxDB.Measurement, "heco_interval")
	}
	if cfg.InfluxDB.SourceTag != "heco" {
		t.Errorf("InfluxDB.SourceTag = %q, want default %q", cfg.InfluxDB.SourceTag, "heco")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	content := `
site:
  id: "test-site"
influxdb:
  url: "http://localhost:8086"
  token: "file-token"
  org: "home"
  bucket: "energy"
importer:
  incoming_dir: "/tmp/incoming"
  processed_dir: "/tmp/processed"
  failed_dir: "/tmp/failed"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("HECO_INFLUXDB_TOKEN", "env-token")
	t.Setenv("HECO_IMPORTER_INCOMING_DIR", "/other/incoming")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.InfluxDB.Token != "env-token" {
		t.Errorf("InfluxDB.Token = %q, want env override %q", cfg.InfluxDB.Token, "env-token")
	}
	if cfg.Importer.IncomingDir != "/other/incoming" {
		t.Errorf("Importer.IncomingDir = %q, want env override %q", cfg.Importer.IncomingDir, "/other/incoming")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Site: SiteConfig{ID: "heco-home", Timezone: "Pacific/Honolulu"},
			Importer: ImporterConfig{
				IncomingDir:  "/incoming",
				ProcessedDir: "/processed",
				FailedDir:    "/failed",
				PollInterval: 10,
			},
			InfluxDB: InfluxDBConfig{
				URL:         "http://localhost:8086",
				Token:       "token",
				Org:         "home",
				Bucket:      "energy",
				Measurement: "heco_interval",
				SourceTag:   "heco",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing token",
			mutate:  func(c *Config) { c.InfluxDB.Token = "" },
			wantErr: "influxdb.token",
		},
		{
			name:    "missing incoming dir",
			mutate:  func(c *Config) { c.Importer.IncomingDir = "" },
			wantErr: "importer.incoming_dir",
		},
		{
			name:    "zero poll interval",
			mutate:  func(c *Config) { c.Importer.PollInterval = 0 },
			wantErr: "importer.poll_interval",
		},
		{
			name:    "missing timezone",
			mutate:  func(c *Config) { c.Site.Timezone = "" },
			wantErr: "site.timezone",
		},
		{
			name: "bad mqtt qos when enabled",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Broker.Host = "localhost"
				c.MQTT.QoS = 3
			},
			wantErr: "mqtt.qos",
		},
		{
			name: "history enabled without path",
			mutate: func(c *Config) {
				c.History.Enabled = true
				c.History.Path = ""
			},
			wantErr: "history.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetPollInterval(t *testing.T) {
	cfg := &Config{Importer: ImporterConfig{PollInterval: 10}}
	if got := cfg.GetPollInterval().Seconds(); got != 10 {
		t.Errorf("GetPollInterval() = %vs, want 10s", got)
	}
}
