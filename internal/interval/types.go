package interval

import "time"

// TimeLayout is the calendar format HECO exports use for interval starts,
// e.g. "1/1/2025 12:15:00 AM". Both parsers share it.
const TimeLayout = "1/2/2006 3:04:05 PM"

// Sample is one interval-usage reading extracted from an export file.
type Sample struct {
	// Timestamp is the interval start, carried in the configured civil
	// zone (Hawaii time for HECO exports), not normalised to UTC.
	Timestamp time.Time

	// Value is the energy used during the interval, in kWh.
	// Negative values are valid (net export to the grid).
	Value float64
}

// Batch is an ordered sequence of samples, in order of appearance in the
// source file. No deduplication or sorting is applied.
//
// An empty batch is a valid parse result (a file with a header and no data
// rows), distinct from a parse failure.
type Batch []Sample
