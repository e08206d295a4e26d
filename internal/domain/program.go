package domain

import "time"

// Degree levels a program can award.
const (
	DegreeBachelor    = "Bachelor"
	DegreeMaster      = "Master"
	DegreePhD         = "PhD"
	DegreeCertificate = "Certificate"
	DegreeDiploma     = "Diploma"
)

// Program is one study-abroad offering. Records come from the catalog store
// (or an import source) and are never mutated by the filter/score passes.
type Program struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	University     string     `json:"university"`
	UniversityID   int64      `json:"universityId,omitempty"`
	Country        string     `json:"country"`
	Field          string     `json:"field"`
	Degree         string     `json:"degree"`
	Tuition        *float64   `json:"tuition,omitempty"` // nil = unknown, never excluded by budget filters
	Currency       string     `json:"currency,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	DurationMonths int        `json:"durationMonths"`
	Language       string     `json:"language"`
	Scholarship    float64    `json:"scholarshipAmount"` // 0 = none
	Ranking        int        `json:"ranking,omitempty"`  // university rank position, 0 = unranked
}

// HasScholarship reports whether the program offers any scholarship money.
func (p Program) HasScholarship() bool { return p.Scholarship > 0 }
