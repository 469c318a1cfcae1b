package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MinimumQualifyingScore is the number of matching keys a candidate needs
// before it is considered the same journal. One key is never enough.
const MinimumQualifyingScore = 2

// MatchStatus describes the result of a MatchIndex lookup.
type MatchStatus int

const (
	// NoMatch means no candidate reached the qualifying score.
	NoMatch MatchStatus = iota
	// Matched means an unclaimed candidate was found and is now claimed.
	Matched
	// Duplicate means every qualifying candidate was already claimed this run.
	Duplicate
)

// String implements fmt.Stringer.
func (s MatchStatus) String() string {
	switch s {
	case Matched:
		return "matched"
	case Duplicate:
		return "duplicate"
	default:
		return "no_match"
	}
}

// Match is returned by MatchIndex.Find. ID is set only when Status is Matched.
type Match struct {
	Status MatchStatus
	ID     string
}

// idSet is a set of journal ids.
type idSet map[string]struct{}

// MatchIndex is an in-memory lookup of journal ids by ISSN, NLMTA and name.
// It lives for exactly one run: it is loaded from a repository snapshot, then
// extended with every journal created during the run.
//
// Ids handed out by Find, and ids registered through Add, are quarantined:
// they are never returned by Find again during the run.
type MatchIndex struct {
	mu sync.Mutex

	byISSN  map[string]idSet
	byNLMTA map[string]idSet
	byName  map[string]idSet

	// known holds every id registered in the index.
	known idSet
	// found holds ids already claimed during this run.
	found idSet
}

// NewMatchIndex creates an empty index.
func NewMatchIndex() *MatchIndex {
	return &MatchIndex{
		byISSN:  make(map[string]idSet),
		byNLMTA: make(map[string]idSet),
		byName:  make(map[string]idSet),
		known:   make(idSet),
		found:   make(idSet),
	}
}

// LoadMatchIndex creates an index holding the keys of every journal in the repository.
func LoadMatchIndex(ctx context.Context, repo Repository) (*MatchIndex, error) {
	idx := NewMatchIndex()

	err := repo.StreamAll(ctx, func(j Journal) error {
		idx.mu.Lock()
		idx.register(j)
		idx.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load match index: %w", err)
	}

	return idx, nil
}

// Len returns the number of distinct journals registered in the index.
func (m *MatchIndex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.known)
}

// Add registers a newly created journal and quarantines its id, so that no
// later record in the run can claim it as an update target.
func (m *MatchIndex) Add(j Journal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.register(j)
	m.found[j.ID] = struct{}{}
}

// Find looks for the best unclaimed journal matching the given keys.
//
// Every key that returns a candidate id adds one to that id's score. Ids
// scoring below MinimumQualifyingScore are dropped; the rest are tried in
// descending score order, ties going to the lexicographically smallest id.
// The first id not yet claimed is claimed and returned.
func (m *MatchIndex) Find(nlmta, name string, issns []string) Match {
	m.mu.Lock()
	defer m.mu.Unlock()

	scores := make(map[string]int)
	tally := func(ids idSet) {
		for id := range ids {
			scores[id]++
		}
	}

	if nlmta != "" {
		tally(m.byNLMTA[nlmta])
	}
	if name != "" {
		tally(m.byName[name])
	}
	// Each stored ISSN key counts once, however many incoming ISSNs resolve to it.
	seen := make(map[string]struct{}, len(issns))
	for _, issn := range issns {
		key, ids := m.lookupISSN(issn)
		if _, dup := seen[key]; dup || ids == nil {
			continue
		}
		seen[key] = struct{}{}
		tally(ids)
	}

	candidates := make([]string, 0, len(scores))
	for id, score := range scores {
		if score >= MinimumQualifyingScore {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return Match{Status: NoMatch}
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := scores[candidates[i]], scores[candidates[j]]
		if si != sj {
			return si > sj
		}
		return candidates[i] < candidates[j]
	})

	for _, id := range candidates {
		if _, claimed := m.found[id]; claimed {
			continue
		}
		m.found[id] = struct{}{}
		return Match{Status: Matched, ID: id}
	}

	return Match{Status: Duplicate}
}

// lookupISSN returns the stored key issn resolves to and the ids registered
// under it. When the typed form ("Print:0000-0001") misses, the bare code
// after the last ':' is tried, so typed incoming ISSNs still match journals
// stored with legacy untyped ISSNs. Callers must hold m.mu.
func (m *MatchIndex) lookupISSN(issn string) (string, idSet) {
	if ids, ok := m.byISSN[issn]; ok {
		return issn, ids
	}
	if i := strings.LastIndex(issn, ":"); i >= 0 {
		bare := issn[i+1:]
		if ids, ok := m.byISSN[bare]; ok {
			return bare, ids
		}
	}
	return "", nil
}

// register indexes the journal's keys. Callers must hold m.mu.
func (m *MatchIndex) register(j Journal) {
	m.known[j.ID] = struct{}{}

	for _, issn := range j.ISSNs {
		if issn != "" {
			addKey(m.byISSN, issn, j.ID)
		}
	}
	if j.NLMTA != "" {
		addKey(m.byNLMTA, j.NLMTA, j.ID)
	}
	if j.Name != "" {
		addKey(m.byName, j.Name, j.ID)
	}
}

func addKey(index map[string]idSet, key, id string) {
	ids, ok := index[key]
	if !ok {
		ids = make(idSet)
		index[key] = ids
	}
	ids[id] = struct{}{}
}
