package reconcile

import "context"

// Source produces a lazy, finite, non-restartable sequence of journal records.
// Implementations exist for the Medline flat file and the NIH PMC type A CSV.
type Source interface {
	// Name identifies the source in logs (e.g. "medline:J_Medline.txt").
	Name() string

	// Next returns the next record, or io.EOF once the source is exhausted.
	// Any other error is a read failure and aborts the run.
	Next() (Record, error)

	// HasParticipationData reports whether an absent participation value
	// from this source means "not participating" rather than "unknown".
	HasParticipationData() bool

	// Close releases the underlying reader.
	Close() error
}

// Repository is the persistence gateway for journals.
type Repository interface {
	// StreamAll calls fn for every stored journal. Iteration stops at the
	// first error returned by fn or by the underlying store.
	StreamAll(ctx context.Context, fn func(Journal) error) error

	// Create persists a new journal and returns its assigned id.
	Create(ctx context.Context, journal Journal) (string, error)

	// Get returns the journal with the given id.
	Get(ctx context.Context, id string) (Journal, error)

	// Update persists all fields of an existing journal.
	Update(ctx context.Context, journal Journal) error
}
