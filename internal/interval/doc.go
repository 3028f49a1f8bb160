// Package interval extracts timestamped energy-usage samples from HECO
// interval export files of inconsistent quality.
//
// # Purpose
//
// HECO's usage exports arrive in two broad shapes:
//
//   - Well-formed two-column tables (Start, kWh) with comma, tab or
//     semicolon delimiters, sometimes with an Excel BOM
//   - Mangled text where a spreadsheet or terminal has stripped the
//     delimiters, leaving timestamps fused directly against their values
//
// The package provides a parser for each shape plus a composition that
// tries the strict parser first and falls back to recovery.
//
// # Usage
//
//	loc, _ := time.LoadLocation("Pacific/Honolulu")
//	parser := interval.NewFileParser(loc)
//
//	batch, err := parser.ParseFile("/incoming/usage.csv")
//	if err != nil {
//	    // neither strategy produced samples; err is the strict error
//	}
//
// # Error Handling
//
// The strict parser fails closed with one of the sentinel errors in
// errors.go. The recovery parser fails open: records it cannot pair are
// dropped silently and it never returns an error. The composition in
// FileParser.Parse keeps the strict error as a first-class value so it can
// be surfaced when recovery finds nothing.
//
// # Timezone
//
// Both parsers stamp every timestamp with a single fixed civil zone passed
// at construction. HECO exports carry no zone marker; the zone is an
// ingestion-wide setting, never per-row.
package interval
