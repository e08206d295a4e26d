package main

import (
	"context"
	"database/sql"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"scholarpath-engine/internal/ai"
	"scholarpath-engine/internal/ai/gemini"
	"scholarpath-engine/internal/config"
	"scholarpath-engine/internal/eligibility"
	"scholarpath-engine/internal/events"
	"scholarpath-engine/internal/httpapi"
	"scholarpath-engine/internal/ingest"
	"scholarpath-engine/internal/logger"
	"scholarpath-engine/internal/recommend"
	"scholarpath-engine/internal/scheduler"
	"scholarpath-engine/internal/secrets"
	"scholarpath-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell can pass one),
	// else a local folder.
	dataDir := os.Getenv("SCHOLARPATH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir. A second instance would fight over the
	// SQLite file and the port.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already runs against %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable.
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg, v := config.NormalizeAndValidate(cfg)
		if !v.OK() {
			log.Printf("config has errors, continuing with normalized values: %v", v.Errors)
		}
		for _, w := range v.Warnings {
			log.Printf("config warning: %s", w)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	zl, err := logger.New(os.Getenv("SCHOLARPATH_LOG_JSON") == "1", os.Getenv("SCHOLARPATH_DEBUG") == "1")
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zl.Sync()

	dbPath := filepath.Join(dataDir, "scholarpath.db")
	db, err := store.Open(dbPath)
	if err != nil {
		zl.Fatal("open database", zap.String("path", dbPath), zap.Error(err))
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		zl.Fatal("migrate database", zap.Error(err))
	}

	hub := events.NewHub()

	// The provider key is optional: without one the ranker returns empty
	// results and the chat serves its fallback reply.
	var gen ai.Generator
	if key, err := secrets.GetGeminiKey(secrets.GeminiKeyringAccount(cfg)); err != nil {
		zl.Warn("gemini key unavailable, recommendations and chat degrade", zap.Error(err))
	} else {
		g, err := gemini.NewGenerator(context.Background(), key, cfg.AI.Model, cfg.AI.RequestsPerMin)
		if err != nil {
			zl.Warn("gemini client init failed", zap.Error(err))
		} else {
			gen = g
			zl.Info("gemini client ready", zap.String("model", g.Model()))
		}
	}

	scorer := eligibility.NewScorer(rand.New(rand.NewSource(time.Now().UnixNano())))
	history := recommend.NewHistoryStore(cfg.AI.HistoryLimit)
	ranker := recommend.NewRanker(gen, zl)
	advisor := recommend.NewAdvisor(gen, history, zl)

	var importStatus atomic.Value
	importStatus.Store(ingest.Status{})

	deps := httpapi.Deps{
		DB:            db,
		Hub:           hub,
		Logger:        zl,
		CfgVal:        &cfgVal,
		ImportStatus:  &importStatus,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		Scorer:        scorer,
		Ranker:        ranker,
		Advisor:       advisor,
		DeleteProgram: store.DeleteProgram,
		RunImport: func(db *sql.DB, c config.Config, onNewProgram func()) (int, error) {
			return ingest.RunOnce(db, c, zl, onNewProgram)
		},
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Drop programs whose deadline passed beyond the retention window.
	go scheduler.Every(runCtx, 12*time.Hour, "cleanup_expired", zl, func(ctx context.Context) error {
		cur := cfgVal.Load().(config.Config)
		n, err := store.CleanupExpiredPrograms(db, cur.Catalog.RetentionMonths)
		if err != nil {
			return err
		}
		if n > 0 {
			zl.Info("expired programs removed", zap.Int64("count", n))
		}
		return nil
	})

	handler := httpapi.Chain(
		httpapi.NewMux(deps),
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover(zl),
		httpapi.AccessLog(zl),
	)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		zl.Fatal("listen", zap.String("addr", addr), zap.Error(err))
	}
	zl.Info("engine listening",
		zap.String("addr", "http://"+addr),
		zap.String("db", dbPath),
		zap.String("config", userCfgPath),
	)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	zl.Fatal("server stopped", zap.Error(srv.Serve(ln)))
}
