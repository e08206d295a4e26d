package store

import (
	"context"
	"database/sql"
	"strings"
)

// EnsureUniversity returns the id for name, creating the row on first sight.
// Ranking is backfilled when a later import knows it and the stored row
// doesn't.
func EnsureUniversity(ctx context.Context, db *sql.DB, name, country string, ranking int) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}

	var id int64
	var storedRanking int
	err := db.QueryRowContext(ctx,
		`SELECT id, ranking FROM universities WHERE name = ?;`, name).Scan(&id, &storedRanking)
	switch {
	case err == nil:
		if ranking > 0 && storedRanking == 0 {
			_, _ = db.ExecContext(ctx, `UPDATE universities SET ranking = ? WHERE id = ?;`, ranking, id)
		}
		return id, nil
	case err != sql.ErrNoRows:
		return 0, err
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO universities (name, country, ranking) VALUES (?, ?, ?);`,
		name, strings.TrimSpace(country), max(ranking, 0))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
