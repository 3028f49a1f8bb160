// Package ledger keeps a SQLite audit trail of import outcomes.
//
// Every file the pipeline resolves — imported or failed — gets one
// append-only row: filename, outcome, point count, error text and
// completion time.
//
// # What the ledger is not
//
// It is not a claim table or a work queue. The pipeline's crash safety
// rests entirely on moving files out of the incoming directory; the ledger
// only records what happened, and a failed ledger write is logged and
// ignored. Deleting the database file loses history but affects nothing
// else.
//
// # Usage
//
//	l, err := ledger.Open(cfg.History)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Close()
//
//	l.Record(ctx, ledger.Entry{File: "usage.csv", Outcome: "imported", Points: 96})
//
//	recent, _ := l.Recent(ctx, 20)
package ledger
