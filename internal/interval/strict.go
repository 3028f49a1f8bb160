package interval

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// utf8BOM is the byte-order mark Excel prepends to CSV exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// delimiters are the candidate column separators, tried in priority order.
var delimiters = []rune{',', '\t', ';'}

// ParseStrict interprets raw file bytes as delimited tabular data with a
// header row and extracts one Sample per data row.
//
// The parser is all-or-nothing: any cell that fails to parse fails the
// whole file. No partial batch is ever returned alongside an error.
//
// Parameters:
//   - data: Raw file contents (a UTF-8 BOM is tolerated)
//   - loc: Civil zone stamped onto every parsed timestamp
//
// Returns:
//   - Batch: One Sample per data row, in row order (may be empty)
//   - error: ErrDelimiterDetection, ErrSchemaMismatch, ErrTimestampFormat
//     or ErrValueFormat, each carrying detail via fmt wrapping
func ParseStrict(data []byte, loc *time.Location) (Batch, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	records, err := detectTable(data)
	if err != nil {
		return nil, err
	}

	// Normalise header names before matching: case-folded and trimmed.
	header := records[0]
	startIdx, kwhIdx := -1, -1
	found := make([]string, 0, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		found = append(found, name)
		switch name {
		case "start":
			startIdx = i
		case "kwh":
			kwhIdx = i
		}
	}
	if startIdx < 0 || kwhIdx < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrSchemaMismatch, found)
	}

	batch := make(Batch, 0, len(records)-1)
	for n, row := range records[1:] {
		cell := strings.TrimSpace(row[startIdx])
		ts, err := time.ParseInLocation(TimeLayout, cell, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q", ErrTimestampFormat, n+1, cell)
		}

		cell = strings.TrimSpace(row[kwhIdx])
		value, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: row %d: %q", ErrValueFormat, n+1, cell)
		}

		batch = append(batch, Sample{Timestamp: ts, Value: value})
	}

	return batch, nil
}

// detectTable tries each candidate delimiter in priority order and returns
// the first parse that yields a table with at least two columns.
func detectTable(data []byte) ([][]string, error) {
	var lastErr error
	for _, sep := range delimiters {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = sep

		records, err := reader.ReadAll()
		if err != nil {
			lastErr = err
			continue
		}
		if len(records) > 0 && len(records[0]) >= 2 {
			return records, nil
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrDelimiterDetection, lastErr)
	}
	return nil, ErrDelimiterDetection
}
