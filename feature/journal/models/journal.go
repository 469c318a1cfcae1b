package models

import "journal-loader/core/reconcile"

// Journal represents the 'journals' table.
type Journal struct {
	ID               string   `gorm:"column:id;primaryKey;type:varchar(36)"`
	JournalName      string   `gorm:"column:journal_name;type:varchar(1024)"`
	NLMTA            string   `gorm:"column:nlmta;type:varchar(255);index"`
	ISSNs            []string `gorm:"column:issns;type:text;serializer:json"`
	PMCParticipation string   `gorm:"column:pmc_participation;type:varchar(8)"`
}

// TableName overrides the table name.
func (Journal) TableName() string {
	return "journals"
}

// ToDomain converts the row into the engine's representation.
func (j Journal) ToDomain() reconcile.Journal {
	return reconcile.Journal{
		ID: j.ID,
		Record: reconcile.Record{
			Name:             j.JournalName,
			NLMTA:            j.NLMTA,
			ISSNs:            append([]string(nil), j.ISSNs...),
			PMCParticipation: reconcile.Participation(j.PMCParticipation),
		},
	}
}

// FromDomain converts an engine journal into a row.
func FromDomain(j reconcile.Journal) Journal {
	issns := j.ISSNs
	if issns == nil {
		issns = []string{}
	}
	return Journal{
		ID:               j.ID,
		JournalName:      j.Name,
		NLMTA:            j.NLMTA,
		ISSNs:            append([]string{}, issns...),
		PMCParticipation: string(j.PMCParticipation),
	}
}
