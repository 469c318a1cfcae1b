package sources

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"journal-loader/core/reconcile"
)

const (
	medlineTitleField = "JournalTitle"
	medlineAbbrField  = "MedAbbr"
	medlineISSNField  = "ISSN"
)

// Medline reads the NLM Medline journal list (J_Medline.txt). Records are
// blocks of "Key: value" lines separated by lines made only of dashes.
// Medline carries no PMC participation data.
type Medline struct {
	name    string
	rc      io.ReadCloser
	scanner *bufio.Scanner
	line    int
}

// NewMedline wraps rc. The source owns rc and closes it on Close.
func NewMedline(name string, rc io.ReadCloser) *Medline {
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Medline{name: name, rc: rc, scanner: scanner}
}

// Name implements reconcile.Source.
func (m *Medline) Name() string { return m.name }

// HasParticipationData implements reconcile.Source.
func (m *Medline) HasParticipationData() bool { return false }

// Close implements reconcile.Source.
func (m *Medline) Close() error { return m.rc.Close() }

// Next implements reconcile.Source.
func (m *Medline) Next() (reconcile.Record, error) {
	var (
		rec     reconcile.Record
		started bool
	)

	for m.scanner.Scan() {
		m.line++
		line := strings.TrimRight(m.scanner.Text(), "\r")

		if isBoundary(line) {
			if started {
				return rec, nil
			}
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		key = strings.TrimSpace(key)

		switch {
		case key == medlineTitleField:
			rec.Name = value
			started = true
		case key == medlineAbbrField:
			rec.NLMTA = value
			started = true
		case strings.HasPrefix(key, medlineISSNField+" ("):
			started = true
			issnType := strings.TrimSuffix(strings.TrimPrefix(key, medlineISSNField+" ("), ")")
			if value != "" && issnType != "" {
				rec.ISSNs = append(rec.ISSNs, issnType+":"+value)
			}
		default:
			started = true
		}
	}

	if err := m.scanner.Err(); err != nil {
		return reconcile.Record{}, fmt.Errorf("line %d: %w", m.line, err)
	}
	if started {
		return rec, nil
	}
	return reconcile.Record{}, io.EOF
}

func isBoundary(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && strings.Trim(line, "-") == ""
}
