// Package store records harness runs in SQLite.
//
// Each run is one row keyed by its run id. The full report is stored as
// canonical JSON so a recorded run can be compared byte-for-byte with a
// later one.
//
// Recording is idempotent: writing the same run id twice keeps the first
// row.
package store
