// Package list implements the canonical record list mirrored from the
// server: wholesale refresh, lookups, and confirmed-delete local removal.
// Mutation policy is strictly pessimistic: nothing is removed or replaced
// locally until the server has confirmed the change.
package list

import "context"

// Record is anything the synchronizer can hold.
type Record interface {
	RecordID() string
}

// Synced is the last-known-good collection of records fetched from the
// server. Order is whatever the server returned; the synchronizer never
// sorts. Not safe for concurrent use; the console mutates it sequentially
// from its event loop.
type Synced[T Record] struct {
	records []T
}

// FetchFunc fetches the full collection from the server.
type FetchFunc[T Record] func(ctx context.Context) ([]T, error)

// Refresh replaces the collection wholesale with the server's view. On
// fetch failure the current collection is left untouched and the error is
// returned for the caller to log; there is no partial merge.
func (s *Synced[T]) Refresh(ctx context.Context, fetch FetchFunc[T]) error {
	records, err := fetch(ctx)
	if err != nil {
		return err
	}

	s.records = records
	return nil
}

// RemoveLocal strips the record with the given id, preserving the order of
// everything else. It must only be called after the server has confirmed
// the delete. Reports whether a record was removed.
func (s *Synced[T]) RemoveLocal(id string) bool {
	for i, r := range s.records {
		if r.RecordID() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the record with the given id.
func (s *Synced[T]) Get(id string) (T, bool) {
	for _, r := range s.records {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// All returns the records in server order. The slice is a copy; the caller
// cannot mutate the canonical list through it.
func (s *Synced[T]) All() []T {
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of records.
func (s *Synced[T]) Len() int { return len(s.records) }
