package interval_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/acruzgit/heco-energy/internal/interval"
)

func TestFileParser_StrictPreferred(t *testing.T) {
	parser := interval.NewFileParser(honolulu)
	data := []byte("Start,kWh\n1/1/2025 12:00:00 AM,0.52\n1/1/2025 12:15:00 AM,0.48\n")

	batch, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("Parse() returned %d samples, want 2", len(batch))
	}
}

func TestFileParser_FallsBackToRecovery(t *testing.T) {
	parser := interval.NewFileParser(honolulu)

	// Collapsed text: strict parsing sees a single-column "table" and
	// fails, recovery takes over.
	data := []byte("StartkWh1/1/2025 12:00:00 AM0.52StartkWh1/1/2025 12:15:00 AM0.48")

	batch, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("Parse() returned %d samples, want 2", len(batch))
	}

	want := time.Date(2025, 1, 1, 0, 0, 0, 0, honolulu)
	if !batch[0].Timestamp.Equal(want) || batch[0].Value != 0.52 {
		t.Errorf("batch[0] = %+v, want {%v 0.52}", batch[0], want)
	}
}

func TestFileParser_StrictErrorSurvivesFailedRecovery(t *testing.T) {
	parser := interval.NewFileParser(honolulu)

	// A well-formed table with a bad value cell and nothing recovery can
	// anchor on. The strict error must be reported, not a recovery one.
	data := []byte("Start,kWh\nnot-a-time,not-a-number\n")

	_, err := parser.Parse(data)
	if err == nil {
		t.Fatal("Parse() expected error, got nil")
	}
	if !errors.Is(err, interval.ErrTimestampFormat) {
		t.Errorf("Parse() error = %v, want the original strict error", err)
	}
}

func TestFileParser_ValueErrorSurvivesFailedRecovery(t *testing.T) {
	parser := interval.NewFileParser(honolulu)

	// Valid timestamp cell but unparsable value, and the raw bytes hold a
	// recoverable timestamp with no following number: recovery yields
	// nothing, the strict ValueFormatError is what comes back.
	data := []byte("Start,kWh\n1/1/2025 12:00:00 AM,zero point five\n")

	_, err := parser.Parse(data)
	if !errors.Is(err, interval.ErrValueFormat) {
		t.Fatalf("Parse() error = %v, want ErrValueFormat", err)
	}
}

func TestFileParser_RecoverySupersedesStrictError(t *testing.T) {
	parser := interval.NewFileParser(honolulu)

	// The "table" has the wrong schema, but the bytes contain one
	// recoverable record, so the schema error is superseded.
	data := []byte("Date,Usage\n1/1/2025 12:00:00 AM,0.52\n")

	batch, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(batch) != 1 || batch[0].Value != 0.52 {
		t.Fatalf("Parse() = %v, want one recovered sample with value 0.52", batch)
	}
}

func TestFileParser_EmptyStrictBatchIsSuccess(t *testing.T) {
	parser := interval.NewFileParser(honolulu)

	batch, err := parser.Parse([]byte("Start,kWh\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(batch) != 0 {
		t.Errorf("Parse() returned %d samples, want 0", len(batch))
	}
}

func TestFileParser_Idempotent(t *testing.T) {
	parser := interval.NewFileParser(honolulu)
	data := []byte("StartkWh1/1/2025 12:00:00 AM0.52StartkWh1/1/2025 12:15:00 AM0.48")

	first, err1 := parser.Parse(data)
	second, err2 := parser.Parse(data)

	if err1 != nil || err2 != nil {
		t.Fatalf("Parse() errors = %v, %v", err1, err2)
	}
	if len(first) != len(second) {
		t.Fatalf("runs disagree on length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Timestamp.Equal(second[i].Timestamp) || first[i].Value != second[i].Value {
			t.Errorf("sample %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFileParser_ParseFile(t *testing.T) {
	parser := interval.NewFileParser(honolulu)

	path := filepath.Join(t.TempDir(), "usage.csv")
	data := "Start,kWh\n1/1/2025 12:00:00 AM,0.52\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	batch, err := parser.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("ParseFile() returned %d samples, want 1", len(batch))
	}
}

func TestFileParser_ParseFile_Missing(t *testing.T) {
	parser := interval.NewFileParser(honolulu)

	_, err := parser.ParseFile("/nonexistent/usage.csv")
	if err == nil {
		t.Fatal("ParseFile() expected error for missing file, got nil")
	}
}
