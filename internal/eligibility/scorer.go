package eligibility

import (
	"math/rand"
	"strings"
	"sync"

	"scholarpath-engine/internal/config"
	"scholarpath-engine/internal/domain"
)

// Result is what the scholarship calculator returns for one profile.
type Result struct {
	Score           int      `json:"score"`       // 0-100
	Amount          int      `json:"amount"`      // estimated scholarship, USD
	SuccessRate     int      `json:"successRate"` // percent, capped at 95
	Tier            string   `json:"tier"`
	Recommendations []string `json:"recommendations"`
}

type tier struct {
	minScore int
	label    string
	low      int
	high     int
}

// Amount brackets by score. The presented figure is drawn uniformly within
// the bracket so repeated calls vary, which is intentional.
var tiers = []tier{
	{85, "Outstanding", 35000, 55000},
	{70, "Strong", 20000, 35000},
	{55, "Competitive", 10000, 20000},
	{40, "Developing", 3000, 10000},
	{0, "Starting", 500, 3000},
}

const maxSuccessRate = 95

// Scorer computes the 0-100 eligibility score from a weighted bucket sum.
// The country table and high-demand field list ride in on the config snapshot
// each call, so edits to config.yml apply immediately; the random source is
// injected so tests can pin the draw.
type Scorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewScorer(rng *rand.Rand) *Scorer {
	return &Scorer{rng: rng}
}

// Score never fails: absent or out-of-range profile fields land in the lowest
// bucket for their factor, mirroring the filter engine's availability-first
// policy.
func (s *Scorer) Score(cfg config.Config, p domain.ApplicantProfile) Result {
	score := gpaPoints(p.GPA) +
		testPoints(p.TestScore) +
		fieldPoints(cfg, p.Field) +
		countryPoints(cfg, p.TargetCountry) +
		clamp(p.FinancialNeed, 0, 10) +
		activityPoints(p.Extracurricular, p.WorkExperience)

	tr := tierFor(score)

	return Result{
		Score:           score,
		Amount:          s.drawAmount(tr),
		SuccessRate:     successRate(score),
		Tier:            tr.label,
		Recommendations: recommendations(p),
	}
}

func gpaPoints(gpa float64) int {
	switch {
	case gpa >= 3.8:
		return 40
	case gpa >= 3.5:
		return 30
	case gpa >= 3.0:
		return 20
	default:
		return 10
	}
}

func testPoints(score float64) int {
	switch {
	case score >= 110:
		return 20
	case score >= 100:
		return 15
	case score >= 90:
		return 10
	default:
		return 5
	}
}

func fieldPoints(cfg config.Config, field string) int {
	field = strings.TrimSpace(field)
	for _, hot := range cfg.Scoring.HighDemandFields {
		if strings.EqualFold(field, hot) {
			return 10
		}
	}
	return 5
}

func countryPoints(cfg config.Config, country string) int {
	country = strings.TrimSpace(country)
	for name, bonus := range cfg.Scoring.CountryBonus {
		if strings.EqualFold(name, country) {
			return clamp(bonus, 0, 10)
		}
	}
	if cfg.Scoring.DefaultCountryBonus > 0 {
		return clamp(cfg.Scoring.DefaultCountryBonus, 0, 10)
	}
	return 5
}

func activityPoints(extracurricular, yearsExperience int) int {
	sum := clamp(extracurricular, 0, 10) + max(yearsExperience, 0)
	return min(sum, 10)
}

func tierFor(score int) tier {
	for _, t := range tiers {
		if score >= t.minScore {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func (s *Scorer) drawAmount(t tier) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.low + s.rng.Intn(t.high-t.low+1)
}

// successRate pads the raw score with an optimism offset, hard-capped below
// 100 so a top profile is never promised certainty.
func successRate(score int) int {
	return min(score+10, maxSuccessRate)
}

func recommendations(p domain.ApplicantProfile) []string {
	var out []string
	if p.GPA < 3.5 {
		out = append(out, "Raise your GPA above 3.5; academic record carries the largest weight in scholarship decisions.")
	}
	if p.TestScore < 100 {
		out = append(out, "Retake your standardized test aiming for 100+; many full awards screen on test scores first.")
	}
	if p.Extracurricular < 6 {
		out = append(out, "Build a stronger extracurricular record: leadership roles, volunteering, or competitions all count.")
	}
	if p.WorkExperience < 1 && !strings.EqualFold(p.Degree, domain.DegreeBachelor) {
		out = append(out, "Gain at least a year of relevant work or research experience before applying to graduate programs.")
	}
	if len(out) == 0 {
		out = append(out, "Your profile is strong across the board; maintain your current performance through the application cycle.")
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
