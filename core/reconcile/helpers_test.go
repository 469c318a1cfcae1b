package reconcile

import (
	"context"
	"fmt"
	"io"

	"github.com/stretchr/testify/mock"
)

// memRepository is an in-memory Repository for engine tests.
type memRepository struct {
	journals map[string]Journal
	order    []string
	nextID   int
}

func newMemRepository(journals ...Journal) *memRepository {
	r := &memRepository{journals: make(map[string]Journal)}
	for _, j := range journals {
		r.journals[j.ID] = cloneJournal(j)
		r.order = append(r.order, j.ID)
	}
	return r
}

func (r *memRepository) StreamAll(ctx context.Context, fn func(Journal) error) error {
	for _, id := range r.order {
		if err := fn(cloneJournal(r.journals[id])); err != nil {
			return err
		}
	}
	return nil
}

func (r *memRepository) Create(ctx context.Context, j Journal) (string, error) {
	r.nextID++
	j.ID = fmt.Sprintf("id-%03d", r.nextID)
	r.journals[j.ID] = cloneJournal(j)
	r.order = append(r.order, j.ID)
	return j.ID, nil
}

func (r *memRepository) Get(ctx context.Context, id string) (Journal, error) {
	j, ok := r.journals[id]
	if !ok {
		return Journal{}, fmt.Errorf("journal %s not found", id)
	}
	return cloneJournal(j), nil
}

func (r *memRepository) Update(ctx context.Context, j Journal) error {
	if _, ok := r.journals[j.ID]; !ok {
		return fmt.Errorf("journal %s not found", j.ID)
	}
	r.journals[j.ID] = cloneJournal(j)
	return nil
}

func (r *memRepository) all() []Journal {
	out := make([]Journal, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.journals[id])
	}
	return out
}

func (r *memRepository) countParticipating() int {
	n := 0
	for _, j := range r.journals {
		if j.PMCParticipation == ParticipationA {
			n++
		}
	}
	return n
}

func cloneJournal(j Journal) Journal {
	j.ISSNs = append([]string(nil), j.ISSNs...)
	return j
}

// mockRepository is a testify mock of Repository.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) StreamAll(ctx context.Context, fn func(Journal) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *mockRepository) Create(ctx context.Context, j Journal) (string, error) {
	args := m.Called(ctx, j)
	return args.String(0), args.Error(1)
}

func (m *mockRepository) Get(ctx context.Context, id string) (Journal, error) {
	args := m.Called(ctx, id)
	if j, ok := args.Get(0).(Journal); ok {
		return j, args.Error(1)
	}
	return Journal{}, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, j Journal) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

// sliceSource is a Source over a fixed list of records.
type sliceSource struct {
	records       []Record
	participation bool
	failAfter     int
	pos           int
}

func newSliceSource(participation bool, records ...Record) *sliceSource {
	return &sliceSource{records: records, participation: participation, failAfter: -1}
}

func (s *sliceSource) Name() string { return "slice" }

func (s *sliceSource) Next() (Record, error) {
	if s.failAfter >= 0 && s.pos == s.failAfter {
		return Record{}, fmt.Errorf("unexpected end of file")
	}
	if s.pos >= len(s.records) {
		return Record{}, io.EOF
	}
	r := s.records[s.pos]
	s.pos++
	return r, nil
}

func (s *sliceSource) HasParticipationData() bool { return s.participation }

func (s *sliceSource) Close() error { return nil }

// countingObserver records outcomes.
type countingObserver struct {
	counts map[Outcome]int
}

func (o *countingObserver) ObserveOutcome(out Outcome) {
	if o.counts == nil {
		o.counts = make(map[Outcome]int)
	}
	o.counts[out]++
}
