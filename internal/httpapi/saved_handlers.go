package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"scholarpath-engine/internal/store"
)

type SavedHandler struct {
	DB *sql.DB
}

type saveRequest struct {
	ProgramID int64  `json:"programId"`
	Note      string `json:"note"`
}

func (h SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	saved, err := store.ListSaved(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if saved == nil {
		saved = []store.SavedProgram{}
	}
	writeJSON(w, saved)
}

func (h SavedHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if req.ProgramID <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "programId is required")
		return
	}

	if err := store.SaveProgram(r.Context(), h.DB, req.ProgramID, req.Note); err != nil {
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SavedHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/saved/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid saved id")
		return
	}
	if err := store.DeleteSaved(r.Context(), h.DB, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
