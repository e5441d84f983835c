package mirror

import "slices"

// Reconciliation is expressed as events applied to the current snapshot, so
// the rules stay unit-testable without a network. The mirror only ever holds
// the last server snapshot, or that snapshot with one confirmed mutation
// applied.
type event[T Record] interface {
	apply(records []T) []T
}

// listReplaced swaps in a full server snapshot. Replace, never merge: any
// local drift from missed events is corrected wholesale.
type listReplaced[T Record] struct {
	records []T
}

func (e listReplaced[T]) apply([]T) []T {
	return slices.Clone(e.records)
}

// recordAdded prepends a server-confirmed create. Records are only added
// after the server assigned an id; there is no optimistic insert.
type recordAdded[T Record] struct {
	record T
}

func (e recordAdded[T]) apply(records []T) []T {
	out := make([]T, 0, len(records)+1)
	out = append(out, e.record)
	return append(out, records...)
}

// recordReplaced swaps the matching record for the server's returned
// version. The server is authoritative for computed fields, so the local
// pre-mutation copy is discarded entirely.
type recordReplaced[T Record] struct {
	record T
}

func (e recordReplaced[T]) apply(records []T) []T {
	out := slices.Clone(records)
	for i := range out {
		if out[i].RecordID() == e.record.RecordID() {
			out[i] = e.record
		}
	}
	return out
}

type recordRemoved[T Record] struct {
	id string
}

func (e recordRemoved[T]) apply(records []T) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if rec.RecordID() != e.id {
			out = append(out, rec)
		}
	}
	return out
}

// matchingRemoved drops every record the predicate selects. Used for cascade
// cleanup of dependents when their owning record is deleted elsewhere.
type matchingRemoved[T Record] struct {
	match func(T) bool
}

func (e matchingRemoved[T]) apply(records []T) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if !e.match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
