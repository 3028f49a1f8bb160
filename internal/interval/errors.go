package interval

import "errors"

// Sentinel errors for the strict tabular parser.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, interval.ErrSchemaMismatch) {
//	    // The file had a table, but not the Start/kWh columns
//	}
var (
	// ErrDelimiterDetection indicates no candidate delimiter produced a
	// table with at least two columns.
	ErrDelimiterDetection = errors.New("interval: no delimiter yields a two-column table")

	// ErrSchemaMismatch indicates the table lacks the expected Start and
	// kWh columns. The wrapped message names the columns actually found.
	ErrSchemaMismatch = errors.New("interval: expected Start and kWh columns")

	// ErrTimestampFormat indicates a start-time cell did not match the
	// expected calendar format. The strict parser never skips rows.
	ErrTimestampFormat = errors.New("interval: bad start-time cell")

	// ErrValueFormat indicates a kWh cell did not parse as a finite
	// decimal number.
	ErrValueFormat = errors.New("interval: bad kWh cell")
)
