package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"scholarpath-engine/internal/domain"
)

// ProgramInsert carries one record toward the catalog. Nil Tuition means
// unknown and round-trips to nil on read.
type ProgramInsert struct {
	Name           string
	Description    string
	University     string
	Country        string
	Field          string
	Degree         string
	Tuition        *float64
	Currency       string
	Deadline       *time.Time
	DurationMonths int
	Language       string
	Scholarship    float64
	Ranking        int
	SourceID       string
}

const programColumns = `
p.id, p.name, p.description, p.university_id, COALESCE(u.name, ''), COALESCE(u.ranking, 0),
p.country, p.field, p.degree, p.tuition, p.currency, p.deadline,
p.duration_months, p.language, p.scholarship`

// ListPrograms returns the whole catalog ordered by id. The filter engine
// runs in memory over this slice; the catalog is local-first and small, this
// is deliberately not an index.
func ListPrograms(ctx context.Context, db *sql.DB) ([]domain.Program, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
SELECT %s
FROM programs p
LEFT JOIN universities u ON u.id = p.university_id
ORDER BY p.id;`, programColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetProgram loads one record, sql.ErrNoRows when absent.
func GetProgram(ctx context.Context, db *sql.DB, id int64) (domain.Program, error) {
	row := db.QueryRowContext(ctx, fmt.Sprintf(`
SELECT %s
FROM programs p
LEFT JOIN universities u ON u.id = p.university_id
WHERE p.id = ?;`, programColumns), id)
	return scanProgram(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgram(r rowScanner) (domain.Program, error) {
	var p domain.Program
	var tuition sql.NullFloat64
	var deadline sql.NullString
	if err := r.Scan(
		&p.ID, &p.Name, &p.Description, &p.UniversityID, &p.University, &p.Ranking,
		&p.Country, &p.Field, &p.Degree, &tuition, &p.Currency, &deadline,
		&p.DurationMonths, &p.Language, &p.Scholarship,
	); err != nil {
		return domain.Program{}, err
	}
	if tuition.Valid {
		v := tuition.Float64
		p.Tuition = &v
	}
	if deadline.Valid && deadline.String != "" {
		if d, err := time.Parse(time.RFC3339, deadline.String); err == nil {
			p.Deadline = &d
		}
	}
	return p, nil
}

// InsertProgramIgnore inserts the record unless its source_id already exists.
func InsertProgramIgnore(ctx context.Context, db *sql.DB, in ProgramInsert) (added bool, err error) {
	uniID, err := EnsureUniversity(ctx, db, in.University, in.Country, in.Ranking)
	if err != nil {
		return false, fmt.Errorf("ensure university: %w", err)
	}

	var tuition any
	if in.Tuition != nil {
		tuition = *in.Tuition
	}
	var deadline any
	if in.Deadline != nil {
		deadline = in.Deadline.UTC().Format(time.RFC3339)
	}

	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO programs
  (name, description, university_id, country, field, degree, tuition, currency,
   deadline, duration_months, language, scholarship, source_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		in.Name, in.Description, uniID, in.Country, in.Field, in.Degree, tuition, in.Currency,
		deadline, in.DurationMonths, in.Language, in.Scholarship, in.SourceID,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert program: %w", err)
	}

	var changes int
	if e := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

// DeleteProgram removes the record and any saved reference to it.
func DeleteProgram(ctx context.Context, db *sql.DB, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM saved_programs WHERE program_id = ?;`, id); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?;`, id)
	return err
}

// CleanupExpiredPrograms drops programs whose deadline passed more than
// retentionMonths ago, keeping deadline-less entries.
func CleanupExpiredPrograms(db *sql.DB, retentionMonths int) (deleted int64, err error) {
	if retentionMonths <= 0 {
		retentionMonths = 3
	}
	res, err := db.Exec(fmt.Sprintf(`
DELETE FROM programs
WHERE deadline IS NOT NULL
  AND deadline != ''
  AND date(deadline) < date('now', '-%d months');`, retentionMonths))
	if err != nil {
		return 0, fmt.Errorf("cleanup expired programs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// SeedPrograms inserts a handful of demo records so a fresh install has
// something to browse.
func SeedPrograms(ctx context.Context, db *sql.DB) ([]domain.Program, error) {
	tuitionDelft := 18750.0
	tuitionToronto := 43500.0
	tuitionMunich := 0.0
	deadline := time.Now().UTC().AddDate(0, 6, 0).Truncate(24 * time.Hour)

	seeds := []ProgramInsert{
		{
			Name: "MSc Computer Science", University: "TU Delft", Country: "Netherlands",
			Field: "Computer Science", Degree: domain.DegreeMaster,
			Tuition: &tuitionDelft, Currency: "EUR", Deadline: &deadline,
			DurationMonths: 24, Language: "English", Scholarship: 5000, Ranking: 47,
			Description: "Two-year research-oriented masters with tracks in AI and systems.",
			SourceID:    "seed:tudelft-msc-cs",
		},
		{
			Name: "BSc Engineering Science", University: "University of Toronto", Country: "Canada",
			Field: "Engineering", Degree: domain.DegreeBachelor,
			Tuition: &tuitionToronto, Currency: "CAD", Deadline: &deadline,
			DurationMonths: 48, Language: "English", Ranking: 21,
			Description: "Broad engineering foundation with specialization majors in upper years.",
			SourceID:    "seed:uoft-bsc-engsci",
		},
		{
			Name: "MSc Data Engineering and Analytics", University: "TU Munich", Country: "Germany",
			Field: "Data Science", Degree: domain.DegreeMaster,
			Tuition: &tuitionMunich, Currency: "EUR",
			DurationMonths: 24, Language: "English", Scholarship: 3000, Ranking: 37,
			Description: "Tuition-free public masters covering large-scale data systems.",
			SourceID:    "seed:tum-msc-data",
		},
	}

	var out []domain.Program
	for _, s := range seeds {
		if _, err := InsertProgramIgnore(ctx, db, s); err != nil {
			return nil, err
		}
	}

	rows, err := ListPrograms(ctx, db)
	if err != nil {
		return nil, err
	}
	out = rows
	return out, nil
}
