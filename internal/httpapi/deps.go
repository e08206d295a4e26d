package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"go.uber.org/zap"

	"scholarpath-engine/internal/config"
	"scholarpath-engine/internal/eligibility"
	"scholarpath-engine/internal/events"
	"scholarpath-engine/internal/recommend"
)

type Deps struct {
	DB *sql.DB

	Hub    *events.Hub
	Logger *zap.Logger

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ImportStatus *atomic.Value // stores ingest.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Scoring components
	Scorer  *eligibility.Scorer
	Ranker  *recommend.Ranker
	Advisor *recommend.Advisor

	DeleteProgram func(ctx context.Context, db *sql.DB, id int64) error

	// Import entrypoint (inject for testability)
	RunImport func(db *sql.DB, cfg config.Config, onNewProgram func()) (added int, err error)
}
