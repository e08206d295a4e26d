package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"scholarpath-engine/internal/config"
	"scholarpath-engine/internal/domain"
	"scholarpath-engine/internal/eligibility"
)

type ScholarshipHandler struct {
	CfgVal *atomic.Value // stores config.Config
	Scorer *eligibility.Scorer
}

type calculateRequest struct {
	Profile *domain.ApplicantProfile `json:"profile"`
}

// Calculate runs the eligibility scorer. A request without a profile is the
// one caller error rejected at this boundary; absent fields inside the
// profile are fine and bucket low.
func (h ScholarshipHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if req.Profile == nil {
		WriteError(w, r, http.StatusBadRequest, "missing_profile", "profile is required")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	writeJSON(w, h.Scorer.Score(cfg, *req.Profile))
}
