package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"scholarpath-engine/internal/recommend"
)

type ChatHandler struct {
	Advisor *recommend.Advisor
}

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat runs one advisory turn. Provider trouble comes back as canned
// guidance text with a 200, never an error status.
func (h ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_user", "userId is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_message", "message is required")
		return
	}

	writeJSON(w, chatResponse{Reply: h.Advisor.Chat(r.Context(), req.UserID, req.Message)})
}

// Reset clears the caller's conversation context.
func (h ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_user", "userId is required")
		return
	}
	h.Advisor.ResetConversation(req.UserID)
	w.WriteHeader(http.StatusNoContent)
}
