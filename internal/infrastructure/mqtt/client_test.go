package mqtt

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/acruzgit/heco-energy/internal/infrastructure/config"
)

// testConfig returns a valid MQTT configuration for testing.
// Connection tests require a running broker; set MQTT_TEST_BROKER
// (e.g. "127.0.0.1") to enable them.
func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     os.Getenv("MQTT_TEST_BROKER"),
			Port:     1883,
			ClientID: "heco-importer-test",
			TLS:      false,
		},
		QoS: 1,
	}
}

// skipIfNoBroker skips tests that need a live MQTT broker.
func skipIfNoBroker(t *testing.T) {
	t.Helper()
	if os.Getenv("MQTT_TEST_BROKER") == "" {
		t.Skip("MQTT_TEST_BROKER not set - skipping integration test")
	}
}

// =============================================================================
// Connection Tests
// =============================================================================

func TestConnect(t *testing.T) {
	skipIfNoBroker(t)

	client, err := Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false, want true")
	}
}

func TestConnectInvalidBroker(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.Host = "127.0.0.1"
	cfg.Broker.Port = 19999 // Nothing listens here

	_, err := Connect(cfg)
	if err == nil {
		t.Fatal("Connect() expected error for invalid broker")
	}

	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestCloseNil(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on zero client error = %v, want nil", err)
	}
}

// =============================================================================
// HealthCheck Tests
// =============================================================================

func TestHealthCheckDisconnected(t *testing.T) {
	client := &Client{}

	err := client.HealthCheck(context.Background())
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestHealthCheckCancelled(t *testing.T) {
	client := &Client{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.HealthCheck(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck() error = %v, want context.Canceled", err)
	}
}

// =============================================================================
// Publish Tests
// =============================================================================

func TestPublishResult(t *testing.T) {
	skipIfNoBroker(t)

	client, err := Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	err = client.PublishResult(ImportResult{
		File:    "usage.csv",
		Outcome: "imported",
		Points:  96,
	})
	if err != nil {
		t.Errorf("PublishResult() error = %v", err)
	}
}

func TestPublishResultNotConnected(t *testing.T) {
	client := &Client{cfg: testConfig()}

	err := client.PublishResult(ImportResult{File: "usage.csv", Outcome: "failed"})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("PublishResult() error = %v, want ErrNotConnected", err)
	}
}

func TestPublishInvalidQoS(t *testing.T) {
	cfg := testConfig()
	cfg.QoS = 3 // MQTT allows 0-2 only

	client := &Client{cfg: cfg}

	err := client.PublishResult(ImportResult{File: "usage.csv", Outcome: "imported"})
	if !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("PublishResult() error = %v, want ErrInvalidQoS", err)
	}
}
