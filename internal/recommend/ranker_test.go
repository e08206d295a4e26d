package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scholarpath-engine/internal/ai"
	"scholarpath-engine/internal/domain"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) Generate(_ context.Context, msgs []ai.Message) (string, ai.Usage, error) {
	var user string
	for _, m := range msgs {
		if m.Role == ai.RoleUser {
			user = m.Content
		}
	}
	s.prompts = append(s.prompts, user)
	if s.err != nil {
		return "", ai.Usage{}, s.err
	}
	return s.response, ai.Usage{}, nil
}

func testCandidates() []domain.Program {
	tuition := 20000.0
	return []domain.Program{
		{ID: 10, Name: "MSc Data Science", University: "ETH Zurich", Country: "Switzerland", Field: "Data Science", Degree: domain.DegreeMaster, Tuition: &tuition, Currency: "USD"},
		{ID: 11, Name: "MSc Robotics", University: "TU Munich", Country: "Germany", Field: "Engineering", Degree: domain.DegreeMaster},
		{ID: 12, Name: "BSc Economics", University: "Erasmus University", Country: "Netherlands", Field: "Economics", Degree: domain.DegreeBachelor},
	}
}

func TestRankSortsAndTruncates(t *testing.T) {
	stub := &stubGenerator{response: `Here are the matches:
[
  {"candidateIndex": 2, "score": 0.55, "reasoning": "different field"},
  {"candidateIndex": 0, "score": 0.95, "reasoning": "direct fit"},
  {"candidateIndex": 1, "score": 0.72, "reasoning": "adjacent field"}
]`}
	r := NewRanker(stub, zap.NewNop())

	out := r.Rank(context.Background(), domain.ApplicantProfile{Field: "Data Science"}, testCandidates(), 2)

	require.Len(t, out, 2)
	assert.Equal(t, int64(10), out[0].Program.ID)
	assert.Equal(t, 0.95, out[0].Score)
	assert.Equal(t, "Excellent Match", out[0].Label)
	assert.Equal(t, int64(11), out[1].Program.ID)
	assert.Equal(t, "Good Match", out[1].Label)
}

func TestRankUnparsableResponseIsEmptyNotError(t *testing.T) {
	stub := &stubGenerator{response: "Sorry, I cannot rank these programs today."}
	r := NewRanker(stub, zap.NewNop())

	out := r.Rank(context.Background(), domain.ApplicantProfile{}, testCandidates(), 5)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRankProviderErrorIsEmptyNotError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("timeout")}
	r := NewRanker(stub, zap.NewNop())

	out := r.Rank(context.Background(), domain.ApplicantProfile{}, testCandidates(), 5)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRankDropsOutOfRangeIndexesKeepsValid(t *testing.T) {
	stub := &stubGenerator{response: `[
  {"candidateIndex": 7, "score": 0.99, "reasoning": "hallucinated"},
  {"candidateIndex": -1, "score": 0.99, "reasoning": "hallucinated"},
  {"candidateIndex": 1, "score": 0.8, "reasoning": "valid"}
]`}
	r := NewRanker(stub, zap.NewNop())

	out := r.Rank(context.Background(), domain.ApplicantProfile{}, testCandidates(), 5)
	require.Len(t, out, 1)
	assert.Equal(t, int64(11), out[0].Program.ID)
	assert.Equal(t, "Great Match", out[0].Label)
}

func TestRankClampsScores(t *testing.T) {
	stub := &stubGenerator{response: `[{"candidateIndex": 0, "score": 3.5, "reasoning": "overexcited"}]`}
	r := NewRanker(stub, zap.NewNop())

	out := r.Rank(context.Background(), domain.ApplicantProfile{}, testCandidates(), 5)
	require.Len(t, out, 1)
	assert.Equal(t, 1.0, out[0].Score)
}

func TestRankPromptIsDeterministic(t *testing.T) {
	stub := &stubGenerator{response: `[]`}
	r := NewRanker(stub, zap.NewNop())

	profile := domain.ApplicantProfile{Field: "Engineering", GPA: 3.7}
	r.Rank(context.Background(), profile, testCandidates(), 5)
	r.Rank(context.Background(), profile, testCandidates(), 5)

	require.Len(t, stub.prompts, 2)
	assert.Equal(t, stub.prompts[0], stub.prompts[1])
}

func TestRankCapsCandidateList(t *testing.T) {
	stub := &stubGenerator{response: `[{"candidateIndex": 19, "score": 0.5, "reasoning": "last allowed"},
{"candidateIndex": 20, "score": 0.9, "reasoning": "beyond cap"}]`}
	r := NewRanker(stub, zap.NewNop())

	var many []domain.Program
	for i := 0; i < 30; i++ {
		many = append(many, domain.Program{ID: int64(i), Name: "P", University: "U"})
	}

	out := r.Rank(context.Background(), domain.ApplicantProfile{}, many, 0)
	require.Len(t, out, 1)
	assert.Equal(t, int64(19), out[0].Program.ID)
}

func TestMatchLabelBoundaries(t *testing.T) {
	cases := map[float64]string{
		0.95: "Excellent Match",
		0.9:  "Excellent Match",
		0.85: "Great Match",
		0.8:  "Great Match",
		0.7:  "Good Match",
		0.6:  "Fair Match",
		0.59: "Consider Requirements",
		0:    "Consider Requirements",
	}
	for score, want := range cases {
		assert.Equal(t, want, domain.MatchLabel(score), "score %v", score)
	}
}
