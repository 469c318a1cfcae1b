package sources

import (
	"io"
	"strings"
	"testing"

	"journal-loader/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPMC_Next(t *testing.T) {
	input := strings.Join([]string{
		`Journal Title,NLM TA,pISSN,eISSN,Release Delay,Deposit Start,Deposit End`,
		`"Journal One, Reports",J One,0000-0001,0000-0002,2001,`,
		`Journal Two,J Two,,0000-0003,2001,2010`,
		`,,,,,`,
		`Journal Three,,0000-0004,,,`,
	}, "\n")

	src := NewPMC("pmc:test", io.NopCloser(strings.NewReader(input)))
	defer src.Close()

	records := readAll(t, src)
	require.Len(t, records, 3)

	assert.Equal(t, reconcile.Record{
		Name:             "Journal One, Reports",
		NLMTA:            "J One",
		ISSNs:            []string{"Print:0000-0001", "Online:0000-0002"},
		PMCParticipation: reconcile.ParticipationA,
	}, records[0])

	assert.Equal(t, []string{"Online:0000-0003"}, records[1].ISSNs)
	assert.Equal(t, reconcile.ParticipationNone, records[1].PMCParticipation)

	assert.Equal(t, "Journal Three", records[2].Name)
	assert.Equal(t, reconcile.ParticipationA, records[2].PMCParticipation)

	assert.True(t, src.HasParticipationData())
}

func TestPMC_WithoutHeader(t *testing.T) {
	input := "Journal One,J One,0000-0001,,2001,\n"
	src := NewPMC("p", io.NopCloser(strings.NewReader(input)))

	records := readAll(t, src)
	require.Len(t, records, 1)
	assert.Equal(t, "Journal One", records[0].Name)
}

func TestPMC_HeaderWithBOM(t *testing.T) {
	input := "\ufeffjournal title,nlmta\nJournal One,J One,,,,\n"
	src := NewPMC("p", io.NopCloser(strings.NewReader(input)))

	records := readAll(t, src)
	require.Len(t, records, 1)
	assert.Equal(t, "J One", records[0].NLMTA)
}

func TestPMC_MalformedRow(t *testing.T) {
	input := "Journal One,J One,0000-0001,,,\nJournal \"Two\",J Two,,,,\n"
	src := NewPMC("p", io.NopCloser(strings.NewReader(input)))

	_, err := src.Next()
	require.NoError(t, err)

	_, err = src.Next()
	assert.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}
