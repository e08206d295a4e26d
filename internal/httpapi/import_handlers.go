package httpapi

import (
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"scholarpath-engine/internal/config"
	"scholarpath-engine/internal/events"
	"scholarpath-engine/internal/ingest"
)

type ImportHandler struct {
	DB           *sql.DB
	CfgVal       *atomic.Value // stores config.Config
	ImportStatus *atomic.Value // stores ingest.Status
	Hub          *events.Hub
	Logger       *zap.Logger
	RunImport    func(db *sql.DB, cfg config.Config, onNewProgram func()) (added int, err error)
}

func (h ImportHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.ImportStatus.Load().(ingest.Status))
}

// Run kicks off one import pass in the background; 409 when one is already
// going.
func (h ImportHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.ImportStatus.Load().(ingest.Status)
	if st.Running {
		WriteError(w, r, http.StatusConflict, "import_running", "an import is already running")
		return
	}

	st.Running = true
	st.LastRunAt = time.Now().UTC().Format(time.RFC3339)
	h.ImportStatus.Store(st)

	cfg := h.CfgVal.Load().(config.Config)
	reqID := RequestIDFrom(r.Context())

	go func() {
		added, err := h.RunImport(h.DB, cfg, func() {
			h.Hub.Publish(events.Make("", events.TypeProgramCreated, nil))
		})

		done := h.ImportStatus.Load().(ingest.Status)
		done.Running = false
		done.LastAdded = added
		if err != nil {
			done.LastError = err.Error()
			h.Logger.Warn("import run failed", zap.Error(err))
		} else {
			done.LastError = ""
			done.LastOkAt = time.Now().UTC().Format(time.RFC3339)
		}
		h.ImportStatus.Store(done)

		h.Hub.Publish(events.Make(reqID, events.TypeProgramsImported, map[string]any{"added": added}))
	}()

	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]any{"started": true})
}
