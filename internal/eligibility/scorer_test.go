package eligibility

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarpath-engine/internal/config"
	"scholarpath-engine/internal/domain"
)

func testConfig() config.Config {
	var raw config.Config
	raw.App.Port = 1
	cfg, _ := config.NormalizeAndValidate(raw)
	return cfg
}

func TestScoreStrongProfile(t *testing.T) {
	s := NewScorer(rand.New(rand.NewSource(1)))

	res := s.Score(testConfig(), domain.ApplicantProfile{
		GPA:             3.9,
		TestScore:       105,
		Field:           "Computer Science",
		TargetCountry:   "Germany",
		FinancialNeed:   5,
		Extracurricular: 8,
		WorkExperience:  2,
	})

	// 40 + 15 + 10 + 8 + 5 + 10
	assert.Equal(t, 88, res.Score)
	assert.Equal(t, 95, res.SuccessRate, "success rate is hard-capped")
	assert.Equal(t, "Outstanding", res.Tier)
	assert.GreaterOrEqual(t, res.Amount, 35000)
	assert.LessOrEqual(t, res.Amount, 55000)
	require.Len(t, res.Recommendations, 1)
	assert.Contains(t, res.Recommendations[0], "maintain")
}

func TestScoreWeakProfile(t *testing.T) {
	s := NewScorer(rand.New(rand.NewSource(2)))

	res := s.Score(testConfig(), domain.ApplicantProfile{
		GPA:             2.5,
		TestScore:       70,
		Field:           "Art",
		TargetCountry:   "Unknown",
		FinancialNeed:   1,
		Extracurricular: 0,
		WorkExperience:  0,
	})

	// 10 + 5 + 5 + 5 + 1 + 0
	assert.Equal(t, 26, res.Score)
	assert.Equal(t, 36, res.SuccessRate)
	assert.Equal(t, "Starting", res.Tier)
	assert.GreaterOrEqual(t, res.Amount, 500)
	assert.LessOrEqual(t, res.Amount, 3000)
	assert.GreaterOrEqual(t, len(res.Recommendations), 2)
}

func TestScoreEmptyProfileDoesNotPanic(t *testing.T) {
	s := NewScorer(rand.New(rand.NewSource(3)))

	res := s.Score(testConfig(), domain.ApplicantProfile{})

	// Everything buckets to its floor: 10+5+5+5+0+0.
	assert.Equal(t, 25, res.Score)
	assert.NotEmpty(t, res.Recommendations)
}

func TestScoreClampsOutOfRangeInputs(t *testing.T) {
	s := NewScorer(rand.New(rand.NewSource(4)))

	res := s.Score(testConfig(), domain.ApplicantProfile{
		GPA:             -1,
		TestScore:       -50,
		FinancialNeed:   99,
		Extracurricular: 99,
		WorkExperience:  -3,
	})

	// 10 + 5 + 5 + 5 + 10 + 10
	assert.Equal(t, 45, res.Score)
}

func TestAmountStaysInsideTierBounds(t *testing.T) {
	s := NewScorer(rand.New(rand.NewSource(5)))
	p := domain.ApplicantProfile{GPA: 3.6, TestScore: 100, Field: "Engineering", FinancialNeed: 5}

	for i := 0; i < 200; i++ {
		res := s.Score(testConfig(), p)
		// 30 + 15 + 10 + 5 + 5 + 0 = 65 -> Competitive tier
		require.Equal(t, 65, res.Score)
		require.GreaterOrEqual(t, res.Amount, 10000)
		require.LessOrEqual(t, res.Amount, 20000)
	}
}

func TestExperienceRecommendationSkipsBachelors(t *testing.T) {
	s := NewScorer(rand.New(rand.NewSource(6)))

	base := domain.ApplicantProfile{GPA: 3.9, TestScore: 110, Extracurricular: 8}

	base.Degree = domain.DegreeBachelor
	for _, r := range s.Score(testConfig(), base).Recommendations {
		assert.NotContains(t, r, "work or research experience")
	}

	base.Degree = domain.DegreeMaster
	var hit bool
	for _, r := range s.Score(testConfig(), base).Recommendations {
		if strings.Contains(r, "work or research experience") {
			hit = true
		}
	}
	assert.True(t, hit, "masters applicant without experience should get the experience rule")
}
