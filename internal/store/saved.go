package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"scholarpath-engine/internal/domain"
)

// SavedProgram is a bookmarked catalog entry.
type SavedProgram struct {
	ID      int64          `json:"id"`
	Note    string         `json:"note,omitempty"`
	SavedAt string         `json:"savedAt"`
	Program domain.Program `json:"program"`
}

// SaveProgram bookmarks a program; saving twice updates the note.
func SaveProgram(ctx context.Context, db *sql.DB, programID int64, note string) error {
	if _, err := GetProgram(ctx, db, programID); err != nil {
		return fmt.Errorf("save program %d: %w", programID, err)
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO saved_programs (program_id, note, saved_at)
VALUES (?, ?, ?)
ON CONFLICT(program_id) DO UPDATE SET note = excluded.note;`,
		programID, note, time.Now().UTC().Format(time.RFC3339))
	return err
}

// ListSaved returns bookmarks newest first.
func ListSaved(ctx context.Context, db *sql.DB) ([]SavedProgram, error) {
	rows, err := db.QueryContext(ctx, `
SELECT s.id, s.program_id, s.note, s.saved_at
FROM saved_programs s
ORDER BY s.saved_at DESC, s.id DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type savedRow struct {
		id        int64
		programID int64
		note      string
		savedAt   string
	}
	var raw []savedRow
	for rows.Next() {
		var r savedRow
		if err := rows.Scan(&r.id, &r.programID, &r.note, &r.savedAt); err != nil {
			return nil, err
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []SavedProgram
	for _, r := range raw {
		p, err := GetProgram(ctx, db, r.programID)
		if err != nil {
			// Program deleted out from under the bookmark; skip it.
			continue
		}
		out = append(out, SavedProgram{ID: r.id, Note: r.note, SavedAt: r.savedAt, Program: p})
	}
	return out, nil
}

// DeleteSaved removes one bookmark by its own id.
func DeleteSaved(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM saved_programs WHERE id = ?;`, id)
	return err
}
