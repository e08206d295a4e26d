package domain

// MatchResult pairs a program with its 0.0-1.0 compatibility score and the
// provider-generated reasoning. Created fresh per scoring pass; persisting it
// is the caller's business.
type MatchResult struct {
	Program   Program `json:"program"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
	Label     string  `json:"label"`
}

// MatchLabel maps a 0.0-1.0 score onto the presentation bucket shown next to
// each recommendation.
func MatchLabel(score float64) string {
	switch {
	case score >= 0.9:
		return "Excellent Match"
	case score >= 0.8:
		return "Great Match"
	case score >= 0.7:
		return "Good Match"
	case score >= 0.6:
		return "Fair Match"
	default:
		return "Consider Requirements"
	}
}
