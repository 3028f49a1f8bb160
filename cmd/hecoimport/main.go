// HECO Interval Importer
//
// This is the main entry point for the HECO interval-usage importer.
// It watches an incoming directory for utility export files, extracts
// timestamped kWh samples (tolerating badly mangled exports), writes them
// to InfluxDB, and relocates each file to processed/ or failed/.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acruzgit/heco-energy/internal/importer"
	"github.com/acruzgit/heco-energy/internal/infrastructure/config"
	"github.com/acruzgit/heco-energy/internal/infrastructure/influxdb"
	"github.com/acruzgit/heco-energy/internal/infrastructure/logging"
	"github.com/acruzgit/heco-energy/internal/infrastructure/mqtt"
	"github.com/acruzgit/heco-energy/internal/interval"
	"github.com/acruzgit/heco-energy/internal/ledger"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting HECO importer",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Resolve the ingestion zone once; every parsed timestamp carries it
	loc, err := time.LoadLocation(cfg.Site.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", cfg.Site.Timezone, err)
	}
	log.Info("ingestion zone resolved", "timezone", cfg.Site.Timezone)

	// Open import history ledger (optional)
	var history *ledger.Ledger
	if cfg.History.Enabled {
		history, err = ledger.Open(cfg.History)
		if err != nil {
			return fmt.Errorf("opening history ledger: %w", err)
		}
		defer func() {
			log.Info("closing history ledger")
			if closeErr := history.Close(); closeErr != nil {
				log.Error("error closing history ledger", "error", closeErr)
			}
		}()
		log.Info("history ledger opened", "path", history.Path())
	} else {
		log.Info("history ledger disabled")
	}

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT notifier disabled")
	}

	// Connect to InfluxDB
	influxClient, err := influxdb.Connect(cfg.InfluxDB)
	if err != nil {
		return fmt.Errorf("connecting to InfluxDB: %w", err)
	}
	defer func() {
		log.Info("closing InfluxDB connection")
		if closeErr := influxClient.Close(); closeErr != nil {
			log.Error("error closing InfluxDB", "error", closeErr)
		}
	}()
	log.Info("InfluxDB connected",
		"url", cfg.InfluxDB.URL,
		"org", cfg.InfluxDB.Org,
		"bucket", cfg.InfluxDB.Bucket,
	)

	// Verify all connections are healthy
	if err := healthCheck(ctx, influxClient, mqttClient, history); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	// Assemble the pipeline
	opts := importer.Options{
		Config: cfg.Importer,
		Parser: interval.NewFileParser(loc),
		Sink:   influxClient,
		Logger: log,
	}
	if history != nil {
		opts.Recorder = &ledgerRecorder{ledger: history}
	}
	if mqttClient != nil {
		opts.Notifier = &mqttNotifier{client: mqttClient}
	}

	pipeline, err := importer.New(opts)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}

	// Run until shutdown signal
	if err := pipeline.Run(ctx); err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	log.Info("HECO importer stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses HECO_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HECO_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - influxClient: InfluxDB client to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - history: Ledger to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, influxClient *influxdb.Client, mqttClient *mqtt.Client, history *ledger.Ledger) error {
	if err := influxClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("influxdb: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if history != nil {
		if err := history.HealthCheck(ctx); err != nil {
			return fmt.Errorf("ledger: %w", err)
		}
	}

	return nil
}

// ledgerRecorder adapts the SQLite ledger to the pipeline's Recorder
// interface.
type ledgerRecorder struct {
	ledger *ledger.Ledger
}

// Record implements importer.Recorder.
func (r *ledgerRecorder) Record(ctx context.Context, file, outcome string, points int, errText string) error {
	return r.ledger.Record(ctx, ledger.Entry{
		File:    file,
		Outcome: outcome,
		Points:  points,
		Error:   errText,
	})
}

// mqttNotifier adapts the MQTT client to the pipeline's Notifier interface.
type mqttNotifier struct {
	client *mqtt.Client
}

// NotifyResult implements importer.Notifier.
func (n *mqttNotifier) NotifyResult(file, outcome string, points int, errText string) error {
	return n.client.PublishResult(mqtt.ImportResult{
		File:    file,
		Outcome: outcome,
		Points:  points,
		Error:   errText,
	})
}
