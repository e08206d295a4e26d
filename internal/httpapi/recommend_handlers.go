package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"scholarpath-engine/internal/catalog"
	"scholarpath-engine/internal/config"
	"scholarpath-engine/internal/domain"
	"scholarpath-engine/internal/recommend"
	"scholarpath-engine/internal/store"
)

type RecommendHandler struct {
	DB     *sql.DB
	CfgVal *atomic.Value // stores config.Config
	Ranker *recommend.Ranker
}

type recommendRequest struct {
	Profile *domain.ApplicantProfile `json:"profile"`
	Limit   int                      `json:"limit"`
}

type recommendResponse struct {
	Results    []domain.MatchResult `json:"results"`
	Pagination Pagination           `json:"pagination"`
}

// Recommend pre-filters the catalog with the profile's own preferences, caps
// the candidate list and hands it to the ranking scorer. Zero results is a
// valid outcome (provider down, nothing matched); the UI shows its fallback,
// never an error page.
func (h RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if req.Profile == nil {
		WriteError(w, r, http.StatusBadRequest, "missing_profile", "profile is required")
		return
	}
	if req.Limit <= 0 || req.Limit > 10 {
		req.Limit = 5
	}

	cfg := h.CfgVal.Load().(config.Config)

	programs, err := store.ListPrograms(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	candidates := catalog.Filter(programs, criteriaFromProfile(*req.Profile))
	if len(candidates) > cfg.AI.MaxCandidates {
		candidates = candidates[:cfg.AI.MaxCandidates]
	}

	results := h.Ranker.Rank(r.Context(), *req.Profile, candidates, req.Limit)

	writeJSON(w, recommendResponse{
		Results:    results,
		Pagination: Pagination{Page: 1, Limit: req.Limit, Total: len(results), Pages: 1},
	})
}

// criteriaFromProfile narrows the catalog with the applicant's own stated
// constraints before the provider call, to bound prompt size and cost.
func criteriaFromProfile(p domain.ApplicantProfile) domain.SearchCriteria {
	c := domain.SearchCriteria{}
	if p.Field != "" {
		c.Fields = []string{p.Field}
	}
	if p.Degree != "" {
		c.Degrees = []string{p.Degree}
	}
	if len(p.PreferredCountries) > 0 {
		c.Countries = p.PreferredCountries
	} else if p.TargetCountry != "" {
		c.Countries = []string{p.TargetCountry}
	}
	c.MinTuition = p.MinBudget
	c.MaxTuition = p.MaxBudget
	return c
}
