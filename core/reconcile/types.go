package reconcile

// Participation is the PMC participation level of a journal.
// The empty value means the journal does not participate (or it is unknown).
type Participation string

const (
	// ParticipationNone means no participation flag is set.
	ParticipationNone Participation = ""
	// ParticipationA marks a journal that deposits articles into PMC automatically.
	ParticipationA Participation = "A"
)

// Record is a normalized journal record produced by a Source.
type Record struct {
	// Name is the full journal title.
	Name string `json:"name"`

	// NLMTA is the NLM title abbreviation.
	NLMTA string `json:"nlmta"`

	// ISSNs holds typed ISSNs, each formatted "<Type>:<code>" (e.g. "Print:0000-0001").
	ISSNs []string `json:"issns"`

	// PMCParticipation is the participation level declared by the source.
	PMCParticipation Participation `json:"pmc_participation,omitempty"`
}

// HasKeys reports whether the record carries enough keys to be matched.
// A record needs at least one ISSN or an NLMTA; a name alone is not enough.
func (r Record) HasKeys() bool {
	return len(r.ISSNs) > 0 || r.NLMTA != ""
}

// Journal is a journal persisted in the repository.
type Journal struct {
	// ID is assigned by the repository on creation.
	ID string `json:"id"`

	Record
}

// Outcome is the terminal state of one processed record.
type Outcome string

const (
	// OutcomeCreated means a new journal was created.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means an existing journal was changed.
	OutcomeUpdated Outcome = "updated"
	// OutcomeOK means an existing journal matched and needed no change.
	OutcomeOK Outcome = "ok"
	// OutcomeSkippedInsufficientKeys means the record had neither ISSNs nor an NLMTA.
	OutcomeSkippedInsufficientKeys Outcome = "skipped_insufficient_keys"
	// OutcomeSkippedDuplicate means the record resolved to a journal already claimed this run.
	OutcomeSkippedDuplicate Outcome = "skipped_duplicate"
	// OutcomeErrored means a repository operation failed for the record.
	OutcomeErrored Outcome = "errored"
)

// Outcomes lists every outcome in summary order.
var Outcomes = []Outcome{
	OutcomeCreated,
	OutcomeUpdated,
	OutcomeOK,
	OutcomeSkippedInsufficientKeys,
	OutcomeSkippedDuplicate,
	OutcomeErrored,
}

// Summary provides aggregate counts for a sync run.
type Summary struct {
	// DryRun is true when no writes were performed.
	DryRun bool `json:"dry_run"`

	// Created counts new journals.
	Created int `json:"created"`

	// Updated counts changed journals.
	Updated int `json:"updated"`

	// OK counts matched journals that needed no change.
	OK int `json:"ok"`

	// SkippedInsufficientKeys counts records without ISSNs or NLMTA.
	SkippedInsufficientKeys int `json:"skipped_insufficient_keys"`

	// SkippedDuplicate counts records resolving to an already claimed journal.
	SkippedDuplicate int `json:"skipped_duplicate"`

	// Errored counts records whose repository operation failed.
	Errored int `json:"errored"`
}

// Add increments the counter for the given outcome.
func (s *Summary) Add(o Outcome) {
	switch o {
	case OutcomeCreated:
		s.Created++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeOK:
		s.OK++
	case OutcomeSkippedInsufficientKeys:
		s.SkippedInsufficientKeys++
	case OutcomeSkippedDuplicate:
		s.SkippedDuplicate++
	case OutcomeErrored:
		s.Errored++
	}
}

// Count returns the counter for the given outcome.
func (s Summary) Count(o Outcome) int {
	switch o {
	case OutcomeCreated:
		return s.Created
	case OutcomeUpdated:
		return s.Updated
	case OutcomeOK:
		return s.OK
	case OutcomeSkippedInsufficientKeys:
		return s.SkippedInsufficientKeys
	case OutcomeSkippedDuplicate:
		return s.SkippedDuplicate
	case OutcomeErrored:
		return s.Errored
	}
	return 0
}

// Total returns the number of records processed.
func (s Summary) Total() int {
	return s.Created + s.Updated + s.OK + s.SkippedInsufficientKeys + s.SkippedDuplicate + s.Errored
}

// Options controls engine behavior.
type Options struct {
	// DryRun simulates writes. The match index is still mutated so duplicate
	// detection within the run keeps working.
	DryRun bool

	// Observer, if set, is notified of every record outcome.
	Observer Observer
}

// Observer receives every record outcome. Metrics collectors implement it.
type Observer interface {
	ObserveOutcome(o Outcome)
}
