package domain

// ApplicantProfile holds the attributes scoring runs on. Every field is
// optional from the caller's point of view: zero values bucket to the lowest
// scoring tier instead of failing.
type ApplicantProfile struct {
	GPA             float64 `json:"gpa"`             // 0.0-4.0
	TestScore       float64 `json:"testScore"`       // normalized 0-120 (TOEFL-equivalent)
	Field           string  `json:"field"`
	TargetCountry   string  `json:"targetCountry"`
	Degree          string  `json:"degree"`
	FinancialNeed   int     `json:"financialNeed"`   // self-rated 1-10
	Extracurricular int     `json:"extracurricular"` // self-rated 1-10
	WorkExperience  int     `json:"workExperience"`  // years

	MinBudget          float64  `json:"minBudget,omitempty"`
	MaxBudget          *float64 `json:"maxBudget,omitempty"`
	PreferredCountries []string `json:"preferredCountries,omitempty"`
}
