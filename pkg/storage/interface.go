// Package storage defines the persistence interfaces the application relies
// on. It abstracts the record store so that different backends (e.g.
// PostgreSQL) can provide concrete implementations.
package storage

import (
	"context"
	"phishmetrics/pkg/domain"
	"time"
)

// RecordFilter narrows a record query to an inclusive analysis-date range.
// Both bounds nil means all records. Callers are responsible for extending a
// date-only End to the last instant of its day; the filter applies the bounds
// verbatim.
type RecordFilter struct {
	Start *time.Time
	End   *time.Time
}

// RecordStorage defines the operations on stored analysis records. Records
// are immutable once stored; there are no update operations.
type RecordStorage interface {
	// StoreRecords inserts one or more analysis records and returns the stored
	// rows as they exist in the database (including generated fields).
	StoreRecords(ctx context.Context, records ...domain.AnalysisRecord) ([]domain.AnalysisRecord, error)
	// Records returns the records matching the filter, ordered descending by
	// analysis date (most recent first).
	Records(ctx context.Context, filter RecordFilter) ([]domain.AnalysisRecord, error)
}

// Storage describes a storage handle with lifecycle management.
type Storage interface {
	RecordStorage

	// Close releases any resources held by the storage implementation (e.g. the
	// underlying connection pool). After Close, the instance should not be used.
	Close() error
}
