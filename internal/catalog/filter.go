package catalog

import (
	"strings"

	"scholarpath-engine/internal/domain"
)

// Filter returns every program satisfying all active facets of c, preserving
// the input's relative order. It is a pure function: no side effects, no
// implicit sort, and identical inputs always produce identical output.
//
// Missing optional record fields never exclude a record; they degrade to
// "no constraint" (unknown tuition passes any budget range, unranked
// universities pass any ranking cutoff).
func Filter(programs []domain.Program, c domain.SearchCriteria) []domain.Program {
	if c.Empty() {
		return programs
	}

	out := make([]domain.Program, 0, len(programs))
	for _, p := range programs {
		if matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Program, c domain.SearchCriteria) bool {
	if c.Query != "" && !matchesQuery(p, c.Query) {
		return false
	}
	if !matchesAny(p.Country, c.Countries) {
		return false
	}
	if !matchesAny(p.Field, c.Fields) {
		return false
	}
	if !matchesAny(p.Degree, c.Degrees) {
		return false
	}
	if !matchesAny(p.Language, c.Languages) {
		return false
	}
	if !matchesBudget(p, c) {
		return false
	}
	if c.DeadlineAfter != nil && p.Deadline != nil && p.Deadline.Before(*c.DeadlineAfter) {
		return false
	}
	if c.MaxDurationMonths > 0 && p.DurationMonths > c.MaxDurationMonths {
		return false
	}
	if c.ScholarshipOnly && !p.HasScholarship() {
		return false
	}
	if c.MinRanking > 0 && p.Ranking > 0 && p.Ranking > c.MinRanking {
		return false
	}
	return true
}

// matchesQuery is the free-text facet: the query must appear as a substring
// in at least one of the searchable fields.
func matchesQuery(p domain.Program, query string) bool {
	return containsFold(p.Name, query) ||
		containsFold(p.University, query) ||
		containsFold(p.Country, query) ||
		containsFold(p.Field, query) ||
		containsFold(p.Description, query)
}

// matchesAny implements an OR facet: the record value must contain one of the
// listed values as a substring. An empty list means the facet is inactive.
func matchesAny(value string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if containsFold(value, w) {
			return true
		}
	}
	return false
}

func matchesBudget(p domain.Program, c domain.SearchCriteria) bool {
	if c.MinTuition == 0 && c.MaxTuition == nil {
		return true
	}
	if p.Tuition == nil {
		// Unknown tuition never fails a budget filter.
		return true
	}
	if *p.Tuition < c.MinTuition {
		return false
	}
	if c.MaxTuition != nil && *p.Tuition > *c.MaxTuition {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}
