package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"scholarpath-engine/internal/ai"
	"scholarpath-engine/internal/domain"
)

const maxCandidates = 20

const rankSystemPrompt = `You are a study-abroad advisor. You receive an applicant profile and a numbered list of programs.
Score how well each program fits the applicant on a 0.0-1.0 scale and explain why in one or two sentences.
Respond with ONLY a JSON array, no prose, where each element is:
{"candidateIndex": <number from the list>, "score": <0.0-1.0>, "reasoning": "<why>"}`

// Ranker asks the text-generation provider to rank a bounded candidate list
// against a profile. Provider failures and garbage responses degrade to an
// empty result; callers must treat zero recommendations as a valid outcome.
type Ranker struct {
	gen    ai.Generator
	logger *zap.Logger
}

func NewRanker(gen ai.Generator, logger *zap.Logger) *Ranker {
	return &Ranker{gen: gen, logger: logger}
}

type rankedEntry struct {
	CandidateIndex int     `json:"candidateIndex"`
	Score          float64 `json:"score"`
	Reasoning      string  `json:"reasoning"`
}

// Rank returns up to limit matches sorted by descending score. The prompt is
// deterministic for identical inputs: candidates keep their given order and
// serialize field by field.
func (r *Ranker) Rank(ctx context.Context, profile domain.ApplicantProfile, candidates []domain.Program, limit int) []domain.MatchResult {
	if len(candidates) == 0 || r.gen == nil {
		return []domain.MatchResult{}
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	prompt, err := buildRankPrompt(profile, candidates)
	if err != nil {
		r.logger.Warn("build rank prompt", zap.Error(err))
		return []domain.MatchResult{}
	}

	raw, usage, err := r.gen.Generate(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: rankSystemPrompt},
		{Role: ai.RoleUser, Content: prompt},
	})
	if err != nil {
		r.logger.Warn("rank provider call failed", zap.Error(err))
		return []domain.MatchResult{}
	}

	r.logger.Debug("rank provider response",
		zap.Int("candidates", len(candidates)),
		zap.Int32("prompt_tokens", usage.PromptTokens),
		zap.Int32("output_tokens", usage.OutputTokens),
	)

	entries, ok := extractJSONArray(raw)
	if !ok {
		r.logger.Warn("rank response had no parsable JSON array",
			zap.Int("response_length", len(raw)))
		return []domain.MatchResult{}
	}

	out := make([]domain.MatchResult, 0, len(entries))
	for _, e := range entries {
		if e.CandidateIndex < 0 || e.CandidateIndex >= len(candidates) {
			// Provider hallucinated an index; data-quality issue, not fatal.
			r.logger.Debug("dropping out-of-range candidate index", zap.Int("index", e.CandidateIndex))
			continue
		}
		score := clampScore(e.Score)
		out = append(out, domain.MatchResult{
			Program:   candidates[e.CandidateIndex],
			Score:     score,
			Reasoning: strings.TrimSpace(e.Reasoning),
			Label:     domain.MatchLabel(score),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func buildRankPrompt(profile domain.ApplicantProfile, candidates []domain.Program) (string, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	var b strings.Builder
	b.WriteString("Applicant profile:\n")
	b.Write(profileJSON)
	b.WriteString("\n\nPrograms:\n")
	for i, p := range candidates {
		tuition := "unknown"
		if p.Tuition != nil {
			tuition = fmt.Sprintf("%.0f %s", *p.Tuition, p.Currency)
		}
		fmt.Fprintf(&b, "%d. %s at %s (%s) - field: %s, degree: %s, tuition: %s, scholarship: %.0f, language: %s\n",
			i, p.Name, p.University, p.Country, p.Field, p.Degree, tuition, p.Scholarship, p.Language)
	}
	return b.String(), nil
}

// extractJSONArray pulls the first well-formed JSON array of ranked entries
// out of freeform provider text, tolerating markdown fences and surrounding
// prose.
func extractJSONArray(raw string) ([]rankedEntry, bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '[' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		var entries []rankedEntry
		if err := dec.Decode(&entries); err == nil {
			return entries, true
		}
	}
	return nil, false
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
