package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dryRunIDPrefix marks placeholder ids synthesized for journals that a dry
// run would have created.
const dryRunIDPrefix = "dryrun-"

// Engine drives record streams through a MatchIndex and applies the
// create/update/skip policy against a Repository.
//
// An Engine serves one run. It is not safe for concurrent use; the index it
// owns is, so several engines may share one index if needed.
type Engine struct {
	repo    Repository
	index   *MatchIndex
	logger  *zap.Logger
	opts    Options
	summary Summary
	closed  bool
}

// NewEngine creates an engine over an already loaded index.
func NewEngine(repo Repository, index *MatchIndex, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		repo:    repo,
		index:   index,
		logger:  logger,
		opts:    opts,
		summary: Summary{DryRun: opts.DryRun},
	}
}

// Open loads a fresh MatchIndex from the repository and returns an engine over it.
func Open(ctx context.Context, repo Repository, logger *zap.Logger, opts Options) (*Engine, error) {
	index, err := LoadMatchIndex(ctx, repo)
	if err != nil {
		return nil, err
	}

	e := NewEngine(repo, index, logger, opts)
	e.logger.Info("Match index loaded", zap.Int("journals", index.Len()))
	return e, nil
}

// Run processes every record of src. Per-record repository failures are
// counted and logged; only read failures and context cancellation abort the
// run and are returned.
func (e *Engine) Run(ctx context.Context, src Source) error {
	l := e.logger.With(zap.String("source", src.Name()))
	l.Info("Processing source", zap.Bool("participation_data", src.HasParticipationData()))

	processed := 0
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("sync of %s interrupted after %d records: %w", src.Name(), processed, err)
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrSourceRead, src.Name(), err)
		}

		e.Process(ctx, rec, src.HasParticipationData())
		processed++
	}

	l.Info("Source processed", zap.Int("records", processed))
	return nil
}

// Process applies the sync policy to a single record and returns its outcome.
func (e *Engine) Process(ctx context.Context, rec Record, participationKnown bool) Outcome {
	outcome := e.process(ctx, rec, participationKnown)
	e.summary.Add(outcome)
	if e.opts.Observer != nil {
		e.opts.Observer.ObserveOutcome(outcome)
	}
	return outcome
}

func (e *Engine) process(ctx context.Context, rec Record, participationKnown bool) Outcome {
	if !rec.HasKeys() {
		e.logger.Warn("Skipping journal", zap.String("name", rec.Name), zap.Error(ErrInsufficientKeys))
		return OutcomeSkippedInsufficientKeys
	}

	match := e.index.Find(rec.NLMTA, rec.Name, rec.ISSNs)
	switch match.Status {
	case NoMatch:
		return e.create(ctx, rec)
	case Duplicate:
		e.logger.Debug("Skipping duplicate journal", zap.String("name", rec.Name))
		return OutcomeSkippedDuplicate
	}

	existing, err := e.repo.Get(ctx, match.ID)
	if err != nil {
		e.logger.Error("Failed to fetch journal",
			zap.String("name", rec.Name),
			zap.String("id", match.ID),
			zap.Error(fmt.Errorf("%w: %w", ErrRepository, err)))
		return OutcomeErrored
	}

	updated, changed := ApplyUpdate(existing, rec, participationKnown)
	if !changed {
		return OutcomeOK
	}

	if !e.opts.DryRun {
		if err := e.repo.Update(ctx, updated); err != nil {
			e.logger.Error("Failed to update journal",
				zap.String("name", rec.Name),
				zap.String("id", match.ID),
				zap.Error(fmt.Errorf("%w: %w", ErrRepository, err)))
			return OutcomeErrored
		}
	}

	e.logger.Debug("Updated journal", zap.String("name", rec.Name), zap.String("id", match.ID))
	return OutcomeUpdated
}

func (e *Engine) create(ctx context.Context, rec Record) Outcome {
	journal := Journal{Record: rec}

	if e.opts.DryRun {
		journal.ID = dryRunIDPrefix + uuid.NewString()
	} else {
		id, err := e.repo.Create(ctx, journal)
		if err != nil {
			e.logger.Error("Failed to create journal",
				zap.String("name", rec.Name),
				zap.Error(fmt.Errorf("%w: %w", ErrRepository, err)))
			return OutcomeErrored
		}
		journal.ID = id
	}

	e.index.Add(journal)
	e.logger.Debug("Created journal", zap.String("name", rec.Name), zap.String("id", journal.ID))
	return OutcomeCreated
}

// ApplyUpdate merges an incoming record into an existing journal:
//
//   - PMC participation is overwritten only when the source knows
//     participation, which lets a newer feed clear a previous flag.
//   - ISSNs are replaced wholesale when the existing list lacks any incoming ISSN.
//   - NLMTA is only filled when the journal has none.
//
// The name is never changed. The returned bool reports whether anything changed.
func ApplyUpdate(existing Journal, incoming Record, participationKnown bool) (Journal, bool) {
	updated := existing
	changed := false

	if participationKnown && existing.PMCParticipation != incoming.PMCParticipation {
		updated.PMCParticipation = incoming.PMCParticipation
		changed = true
	}

	if len(incoming.ISSNs) > 0 && !containsAll(existing.ISSNs, incoming.ISSNs) {
		updated.ISSNs = append([]string(nil), incoming.ISSNs...)
		changed = true
	}

	if existing.NLMTA == "" && incoming.NLMTA != "" {
		updated.NLMTA = incoming.NLMTA
		changed = true
	}

	return updated, changed
}

// Summary returns the counters accumulated so far.
func (e *Engine) Summary() Summary {
	return e.summary
}

// Index returns the engine's match index.
func (e *Engine) Index() *MatchIndex {
	return e.index
}

// Close logs the run summary once and returns it. Further calls only return it.
func (e *Engine) Close() Summary {
	if e.closed {
		return e.summary
	}
	e.closed = true

	s := e.summary
	if s.DryRun {
		e.logger.Info("Dry run complete, no changes were written",
			zap.Int("would_create", s.Created),
			zap.Int("would_update", s.Updated),
			zap.Int("unchanged", s.OK),
			zap.Int("skipped_insufficient_keys", s.SkippedInsufficientKeys),
			zap.Int("skipped_duplicate", s.SkippedDuplicate),
			zap.Int("errors", s.Errored),
		)
	} else {
		e.logger.Info("Journal sync complete",
			zap.Int("created", s.Created),
			zap.Int("updated", s.Updated),
			zap.Int("unchanged", s.OK),
			zap.Int("skipped_insufficient_keys", s.SkippedInsufficientKeys),
			zap.Int("skipped_duplicate", s.SkippedDuplicate),
			zap.Int("errors", s.Errored),
		)
	}

	return s
}

func containsAll(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, v := range have {
		set[v] = struct{}{}
	}
	for _, v := range want {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}
