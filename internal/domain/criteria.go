package domain

import "time"

// SearchCriteria is a catalog query. A facet is active only when its value is
// non-empty/non-nil; inactive facets impose no constraint. Facets combine with
// AND; values inside a multi-value facet combine with OR.
type SearchCriteria struct {
	Query     string   // free text across name, university, country, field, description
	Countries []string
	Fields    []string
	Degrees   []string
	Languages []string

	MinTuition float64  // 0 = open lower bound
	MaxTuition *float64 // nil = open upper bound

	DeadlineAfter     *time.Time // only programs still accepting on/after this date
	MaxDurationMonths int        // 0 = no constraint

	ScholarshipOnly bool
	MinRanking      int // only universities ranked at position <= this; 0 = no constraint
}

// Empty reports whether no facet is active, in which case a filter pass
// returns its input unchanged.
func (c SearchCriteria) Empty() bool {
	return c.Query == "" &&
		len(c.Countries) == 0 && len(c.Fields) == 0 &&
		len(c.Degrees) == 0 && len(c.Languages) == 0 &&
		c.MinTuition == 0 && c.MaxTuition == nil &&
		c.DeadlineAfter == nil && c.MaxDurationMonths == 0 &&
		!c.ScholarshipOnly && c.MinRanking == 0
}
