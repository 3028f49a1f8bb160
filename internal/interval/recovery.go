package interval

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Token grammars for collapsed-text recovery. Timestamps are the only
// reliably re-discoverable anchor once delimiters have been stripped.
var (
	timestampRE = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}\s+\d{1,2}:\d{2}:\d{2}\s+(?:AM|PM)`)
	numberRE    = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)
)

// noiseFragments are column-label runs known to appear fused against data
// in collapsed exports (e.g. "StartkWh12/1/2025 12:00:00 AM0.1986...").
// Each occurrence is replaced with a space so adjacent tokens stay intact.
var noiseFragments = []string{"StartkWh", "Start kWh"}

// ParseCollapsed recovers samples from text whose structure has been lost,
// such as a spreadsheet export with delimiters stripped.
//
// Recovery is best-effort per record, not all-or-nothing:
//
//  1. Line breaks are collapsed to spaces and known label fragments removed.
//  2. Every substring matching the timestamp grammar becomes a record anchor.
//  3. Each anchor is paired with the first decimal number strictly between
//     it and the next anchor (or end of text).
//  4. An anchor with no following number contributes nothing and is dropped
//     silently.
//
// Parameters:
//   - data: Raw file contents
//   - loc: Civil zone stamped onto every parsed timestamp
//
// Returns:
//   - Batch: Recovered samples in scan order; empty when nothing matched
func ParseCollapsed(data []byte, loc *time.Location) Batch {
	cleaned := strings.NewReplacer("\r", " ", "\n", " ").Replace(string(data))
	for _, frag := range noiseFragments {
		cleaned = strings.ReplaceAll(cleaned, frag, " ")
	}

	matches := timestampRE.FindAllStringIndex(cleaned, -1)
	var batch Batch

	for i, m := range matches {
		spanEnd := len(cleaned)
		if i+1 < len(matches) {
			spanEnd = matches[i+1][0]
		}
		span := cleaned[m[1]:spanEnd]

		num := numberRE.FindString(span)
		if num == "" {
			continue
		}

		// The grammar allows runs of whitespace inside a match (collapsed
		// line breaks); squeeze them before handing to time.Parse.
		text := strings.Join(strings.Fields(cleaned[m[0]:m[1]]), " ")
		ts, err := time.ParseInLocation(TimeLayout, text, loc)
		if err != nil {
			continue
		}

		value, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}

		batch = append(batch, Sample{Timestamp: ts, Value: value})
	}

	return batch
}
