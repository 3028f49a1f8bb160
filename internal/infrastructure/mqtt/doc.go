// Package mqtt publishes import outcomes for the HECO importer.
//
// It wraps paho.mqtt.golang as a publish-only notifier: home-lab
// dashboards subscribe to see import activity without polling InfluxDB or
// the filesystem.
//
// # Topics
//
//   - heco/import/status — retained online/offline status, with LWT for
//     crash detection
//   - heco/import/result — one retained JSON message per processed file
//     (file, outcome, point count, error text)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.PublishResult(mqtt.ImportResult{
//	    File:    "usage.csv",
//	    Outcome: "imported",
//	    Points:  96,
//	})
//
// # Error Handling
//
// The notifier is strictly best-effort. Publish errors are returned to the
// caller for logging but must never affect file routing; file lifecycle
// correctness lives entirely in the importer package.
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
package mqtt
