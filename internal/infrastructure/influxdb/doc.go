// Package influxdb provides the time-series sink for the HECO importer.
//
// It wraps the official influxdb-client-go v2 library with the importer's
// batched-write contract: one blocking write per successfully parsed file.
//
// # Purpose
//
// This package handles time-series storage of interval-usage samples.
// Each sample is written under a configurable measurement (default
// "heco_interval") with a fixed "source" tag (default "heco") and a "kwh"
// field, at second precision.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:         "http://localhost:8086",
//	    Token:       "your-token",
//	    Org:         "home",
//	    Bucket:      "energy",
//	    Measurement: "heco_interval",
//	    SourceTag:   "heco",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	n, err := client.WriteSamples(ctx, batch)
//
// # Error Handling
//
// Writes are synchronous; a failed write returns ErrWriteFailed directly so
// the pipeline can route the source file to failed/. Connection and health
// check errors are returned from Connect and HealthCheck.
//
// # Idempotence
//
// Points are keyed by measurement, tag set and timestamp, so writing the
// same file twice overwrites the same points instead of duplicating them.
// This is what makes re-processing after a crash safe.
package influxdb
