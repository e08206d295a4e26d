package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scholarpath-engine/internal/config"
	"scholarpath-engine/internal/store"
)

// Status mirrors what the UI shows on the import page.
type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}

// RunOnce fetches every configured source concurrently, parses the listing
// pages and upserts new programs. One broken source never fails the run;
// partial results win over strictness.
func RunOnce(db *sql.DB, cfg config.Config, logger *zap.Logger, onNewProgram func()) (added int, err error) {
	parent := context.Background()
	limiter := NewHostLimiter(1.0, 2)
	hc := &http.Client{Timeout: 20 * time.Second}

	var g errgroup.Group
	results := make(chan []store.ProgramInsert, len(cfg.Import.Sources))

	for _, src := range cfg.Import.Sources {
		src := src
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(parent, 2*time.Minute)
			defer cancel()

			logger.Info("import source running", zap.String("source", src.Name))
			inserts, ferr := fetchSource(fctx, hc, limiter, src)
			if ferr != nil {
				logger.Warn("import source failed", zap.String("source", src.Name), zap.Error(ferr))
				return nil
			}
			results <- inserts
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	insertCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	total := 0
	for inserts := range results {
		for _, in := range inserts {
			ok, ierr := store.InsertProgramIgnore(insertCtx, db, in)
			if ierr != nil {
				logger.Warn("import insert failed",
					zap.String("program", in.Name), zap.String("source_id", in.SourceID), zap.Error(ierr))
				continue
			}
			if !ok {
				continue
			}
			total++
			if onNewProgram != nil {
				onNewProgram()
			}
		}
	}

	return total, nil
}

func fetchSource(ctx context.Context, hc *http.Client, limiter *HostLimiter, src config.ImportSource) ([]store.ProgramInsert, error) {
	if err := limiter.WaitURL(ctx, src.URL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "ScholarPath/1.0 (+local)")

	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get catalog page: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("catalog page status %d", res.StatusCode)
	}

	if src.Format == "json" {
		return ParseProgramsJSON(res.Body, src.Name)
	}
	return ParsePrograms(res.Body, src.Name)
}
