package reconcile

import "errors"

var (
	// ErrConfiguration is returned before a run starts when it cannot be set up.
	ErrConfiguration = errors.New("invalid sync configuration")

	// ErrSourceRead is fatal: the record stream could not be read.
	ErrSourceRead = errors.New("source read failed")

	// ErrInsufficientKeys marks a record with neither ISSNs nor an NLMTA.
	ErrInsufficientKeys = errors.New("record has no issn or nlmta")

	// ErrRepository wraps a failed repository read or write for one record.
	ErrRepository = errors.New("repository operation failed")
)
