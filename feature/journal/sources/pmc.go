package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"journal-loader/core/reconcile"
)

// Column positions of the NIH PMC type A journal list.
const (
	pmcColName = iota
	pmcColNLMTA
	pmcColPrintISSN
	pmcColOnlineISSN
	pmcColStartDate
	pmcColEndDate
	pmcColumns
)

const pmcHeaderTitle = "journal title"

// PMC reads the NIH PMC type A journal CSV. It carries participation data:
// a journal without an end date deposits automatically (type A), a journal
// with one no longer does.
type PMC struct {
	name   string
	rc     io.ReadCloser
	reader *csv.Reader
	row    int
}

// NewPMC wraps rc. The source owns rc and closes it on Close.
func NewPMC(name string, rc io.ReadCloser) *PMC {
	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return &PMC{name: name, rc: rc, reader: reader}
}

// Name implements reconcile.Source.
func (p *PMC) Name() string { return p.name }

// HasParticipationData implements reconcile.Source.
func (p *PMC) HasParticipationData() bool { return true }

// Close implements reconcile.Source.
func (p *PMC) Close() error { return p.rc.Close() }

// Next implements reconcile.Source.
func (p *PMC) Next() (reconcile.Record, error) {
	for {
		fields, err := p.reader.Read()
		if err == io.EOF {
			return reconcile.Record{}, io.EOF
		}
		if err != nil {
			return reconcile.Record{}, fmt.Errorf("row %d: %w", p.row+1, err)
		}
		p.row++

		if p.row == 1 && isPMCHeader(fields) {
			continue
		}
		if isBlankRow(fields) {
			continue
		}

		return parsePMCRow(fields), nil
	}
}

func parsePMCRow(fields []string) reconcile.Record {
	col := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	rec := reconcile.Record{
		Name:  col(pmcColName),
		NLMTA: col(pmcColNLMTA),
	}
	if v := col(pmcColPrintISSN); v != "" {
		rec.ISSNs = append(rec.ISSNs, "Print:"+v)
	}
	if v := col(pmcColOnlineISSN); v != "" {
		rec.ISSNs = append(rec.ISSNs, "Online:"+v)
	}
	if col(pmcColEndDate) == "" {
		rec.PMCParticipation = reconcile.ParticipationA
	}
	return rec
}

func isPMCHeader(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	first := strings.TrimPrefix(fields[0], "\ufeff")
	return strings.EqualFold(strings.TrimSpace(first), pmcHeaderTitle)
}

func isBlankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
