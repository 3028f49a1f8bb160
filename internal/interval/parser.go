package interval

import (
	"fmt"
	"os"
	"time"
)

// FileParser extracts samples from a HECO export file.
//
// It prefers the strict tabular parser, which enforces schema correctness,
// and falls back to collapsed-text recovery when the strict parse fails for
// any reason. The fallback decision is made on first-class error values, so
// the original strict error survives to be reported when recovery also
// comes up empty.
type FileParser struct {
	loc *time.Location
}

// NewFileParser creates a FileParser stamping all timestamps with loc.
func NewFileParser(loc *time.Location) *FileParser {
	return &FileParser{loc: loc}
}

// Parse extracts a batch of samples from raw file bytes.
//
// The strict parser runs first. On any strict failure (delimiter, schema,
// timestamp or value error) recovery runs on the same bytes:
//   - recovery finds at least one sample → that batch is returned and the
//     strict failure is silently superseded
//   - recovery finds nothing → the original strict error is returned, since
//     "recovery found nothing" is never the informative failure
//
// Parsing is deterministic: identical bytes always yield an identical batch.
func (p *FileParser) Parse(data []byte) (Batch, error) {
	batch, strictErr := ParseStrict(data, p.loc)
	if strictErr == nil {
		return batch, nil
	}

	recovered := ParseCollapsed(data, p.loc)
	if len(recovered) == 0 {
		return nil, strictErr
	}
	return recovered, nil
}

// ParseFile reads the file at path and parses its contents.
//
// Returns:
//   - Batch: Extracted samples (may be empty)
//   - error: Read failure, or the strict-parser error when both strategies fail
func (p *FileParser) ParseFile(path string) (Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Parse(data)
}
