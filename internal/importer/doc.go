// Package importer drives the file-processing lifecycle for HECO exports.
//
// # State machine
//
// Per file, per sweep: discovered → parsing → {imported, failed}. Both
// terminal states are directories; a file lives in exactly one of
// incoming, processed or failed at any time, and relocation is a single
// atomic rename.
//
// # Crash safety
//
// There is deliberately no in-memory claim or lock table. Moving a file
// out of incoming is the one and only "done" signal, so after a crash the
// next start re-lists incoming and sees exactly the files that were never
// resolved. A crash between sink write and rename leaves the file in
// incoming; re-processing it is safe because sink points are keyed by
// measurement, tag and timestamp and simply overwrite.
//
// # Known limitation
//
// There is no retry cap: a permanently malformed file that also fails its
// relocation to failed/ will be reattempted every sweep until someone
// removes it out-of-band.
//
// # Concurrency
//
// One cooperative loop, no parallel workers. Files are resolved strictly
// one at a time, which removes any need for per-file locking at the cost
// of throughput on large simultaneous drops. Cancellation is honoured
// between sweeps via the context passed to Run.
package importer
