package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarpath-engine/internal/domain"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestInsertProgramIgnoreDedupesOnSourceID(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	in := ProgramInsert{
		Name: "MSc Robotics", University: "TU Munich", Country: "Germany",
		Field: "Engineering", Degree: domain.DegreeMaster, SourceID: "src:1",
	}

	added, err := InsertProgramIgnore(ctx, db, in)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = InsertProgramIgnore(ctx, db, in)
	require.NoError(t, err)
	assert.False(t, added, "same source_id must not insert twice")

	programs, err := ListPrograms(ctx, db)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "TU Munich", programs[0].University)
}

func TestTuitionNilRoundTrips(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := InsertProgramIgnore(ctx, db, ProgramInsert{
		Name: "PhD History", University: "Heidelberg University",
		Country: "Germany", Degree: domain.DegreePhD, SourceID: "src:2",
	})
	require.NoError(t, err)

	programs, err := ListPrograms(ctx, db)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Nil(t, programs[0].Tuition, "unknown tuition must stay unknown")
}

func TestUniversityRankingBackfill(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	id1, err := EnsureUniversity(ctx, db, "ETH Zurich", "Switzerland", 0)
	require.NoError(t, err)
	id2, err := EnsureUniversity(ctx, db, "ETH Zurich", "Switzerland", 7)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	_, err = InsertProgramIgnore(ctx, db, ProgramInsert{
		Name: "MSc CS", University: "ETH Zurich", Country: "Switzerland", SourceID: "src:3",
	})
	require.NoError(t, err)

	programs, err := ListPrograms(ctx, db)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, 7, programs[0].Ranking)
}

func TestSavedProgramsLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := InsertProgramIgnore(ctx, db, ProgramInsert{
		Name: "MSc CS", University: "TU Delft", Country: "Netherlands", SourceID: "src:4",
	})
	require.NoError(t, err)

	programs, err := ListPrograms(ctx, db)
	require.NoError(t, err)
	pid := programs[0].ID

	require.NoError(t, SaveProgram(ctx, db, pid, "top choice"))
	require.NoError(t, SaveProgram(ctx, db, pid, "still top choice"), "re-saving updates the note")

	saved, err := ListSaved(ctx, db)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "still top choice", saved[0].Note)
	assert.Equal(t, pid, saved[0].Program.ID)

	require.NoError(t, DeleteSaved(ctx, db, saved[0].ID))
	saved, err = ListSaved(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, saved)

	assert.Error(t, SaveProgram(ctx, db, 99999, ""), "bookmarking a missing program fails")
}

func TestCleanupExpiredPrograms(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	old := time.Now().UTC().AddDate(0, -6, 0)
	future := time.Now().UTC().AddDate(0, 6, 0)

	_, err := InsertProgramIgnore(ctx, db, ProgramInsert{
		Name: "Expired", University: "U1", Deadline: &old, SourceID: "src:old",
	})
	require.NoError(t, err)
	_, err = InsertProgramIgnore(ctx, db, ProgramInsert{
		Name: "Open", University: "U2", Deadline: &future, SourceID: "src:open",
	})
	require.NoError(t, err)
	_, err = InsertProgramIgnore(ctx, db, ProgramInsert{
		Name: "Rolling", University: "U3", SourceID: "src:rolling",
	})
	require.NoError(t, err)

	deleted, err := CleanupExpiredPrograms(db, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	programs, err := ListPrograms(ctx, db)
	require.NoError(t, err)
	require.Len(t, programs, 2)
}

func TestCleanupComparesByCalendarDay(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Midnight on the cutoff day itself: not strictly older, must survive.
	boundary := time.Now().UTC().AddDate(0, -3, 0).Truncate(24 * time.Hour)
	_, err := InsertProgramIgnore(ctx, db, ProgramInsert{
		Name: "Boundary", University: "U1", Deadline: &boundary, SourceID: "src:boundary",
	})
	require.NoError(t, err)

	dayBefore := boundary.AddDate(0, 0, -1)
	_, err = InsertProgramIgnore(ctx, db, ProgramInsert{
		Name: "Day Before", University: "U2", Deadline: &dayBefore, SourceID: "src:daybefore",
	})
	require.NoError(t, err)

	deleted, err := CleanupExpiredPrograms(db, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	programs, err := ListPrograms(ctx, db)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "Boundary", programs[0].Name)
}
