package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"scholarpath-engine/internal/catalog"
	"scholarpath-engine/internal/config"
	"scholarpath-engine/internal/domain"
	"scholarpath-engine/internal/events"
	"scholarpath-engine/internal/store"
)

type ProgramsHandler struct {
	DB            *sql.DB
	Hub           *events.Hub
	CfgVal        *atomic.Value // stores config.Config
	DeleteProgram func(ctx context.Context, db *sql.DB, id int64) error
}

type programListResponse struct {
	Results    []domain.Program `json:"results"`
	Pagination Pagination       `json:"pagination"`
}

// List maps query parameters onto SearchCriteria, runs the in-memory filter
// pass and returns one page. Data-quality problems never produce an error
// page: worst case is an empty result list.
func (h ProgramsHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)

	programs, err := store.ListPrograms(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	filtered := catalog.Filter(programs, criteriaFromQuery(r))

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	pg, start, end := paginate(len(filtered), page, limit, cfg.Catalog.PageLimitMax)

	results := filtered[start:end]
	if results == nil {
		results = []domain.Program{}
	}
	writeJSON(w, programListResponse{Results: results, Pagination: pg})
}

func criteriaFromQuery(r *http.Request) domain.SearchCriteria {
	q := r.URL.Query()

	c := domain.SearchCriteria{
		Query:     strings.TrimSpace(q.Get("search")),
		Countries: splitParam(q.Get("country")),
		Fields:    splitParam(q.Get("field")),
		Degrees:   splitParam(q.Get("degree")),
		Languages: splitParam(q.Get("language")),
	}

	if v, err := strconv.ParseFloat(q.Get("minTuition"), 64); err == nil && v > 0 {
		c.MinTuition = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxTuition"), 64); err == nil && v >= 0 {
		c.MaxTuition = &v
	}
	if v, err := strconv.Atoi(q.Get("maxDuration")); err == nil && v > 0 {
		c.MaxDurationMonths = v
	}
	if v, err := strconv.Atoi(q.Get("minRanking")); err == nil && v > 0 {
		c.MinRanking = v
	}
	if q.Get("scholarship") == "true" || q.Get("scholarship") == "1" {
		c.ScholarshipOnly = true
	}
	if d, err := time.Parse("2006-01-02", q.Get("deadlineAfter")); err == nil {
		c.DeadlineAfter = &d
	}
	return c
}

// splitParam turns "Germany,Netherlands" into facet values; malformed input
// degrades to no constraint.
func splitParam(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetByPath serves /programs/{id}.
func (h ProgramsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/programs/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid program id")
		return
	}

	p, err := store.GetProgram(r.Context(), h.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, r, http.StatusNotFound, "not_found", "program not found")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, p)
}

// DeleteByPath serves DELETE /programs/{id}.
func (h ProgramsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/programs/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid program id")
		return
	}

	if err := h.DeleteProgram(r.Context(), h.DB, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.TypeProgramDeleted, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

// Seed loads the demo catalog.
func (h ProgramsHandler) Seed(w http.ResponseWriter, r *http.Request) {
	programs, err := store.SeedPrograms(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.TypeProgramCreated, map[string]any{"count": len(programs)}))
	writeJSON(w, programs)
}

func idFromPath(path, prefix string) (int64, bool) {
	idStr := strings.TrimPrefix(path, prefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
