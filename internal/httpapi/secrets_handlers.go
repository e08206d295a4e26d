package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"scholarpath-engine/internal/config"
	"scholarpath-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setGeminiKeyReq struct {
	Key string `json:"key"`
}

func (h SecretsHandler) SetGeminiKey(w http.ResponseWriter, r *http.Request) {
	var req setGeminiKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetGeminiKey(secrets.GeminiKeyringAccount(cfg), req.Key); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_error", "failed to store key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
