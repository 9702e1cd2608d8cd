package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time — should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"plans", "plan_entries"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"idx_plans_day", "idx_plan_entries_plan"}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_StatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plans (id, task_name, day, status, created_at)
		VALUES ('p1', 'Essay', '2026-04-20', 'INVALID', '2026-04-19T00:00:00Z')`)
	assert.Error(t, err, "invalid plan status should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO plans (id, task_name, day, status, created_at)
		VALUES ('p1', 'Essay', '2026-04-20', 'synced', '2026-04-19T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_SourceCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plans (id, task_name, day, status, created_at)
		VALUES ('p1', 'Essay', '2026-04-20', 'synced', '2026-04-19T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO plan_entries (id, plan_id, title, estimated_min, source, slot_start, slot_end)
		VALUES ('e1', 'p1', 'Outline', 30, 'guessed', '2026-04-20T09:00:00Z', '2026-04-20T09:30:00Z')`)
	assert.Error(t, err, "unknown subtask source should be rejected")

	_, err = db.Exec(`INSERT INTO plan_entries (id, plan_id, title, estimated_min, source, slot_start, slot_end)
		VALUES ('e1', 'p1', 'Outline', 30, 'custom', '2026-04-20T09:00:00Z', '2026-04-20T09:30:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_EntriesCascadeWithPlan(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plans (id, task_name, day, status, created_at)
		VALUES ('p1', 'Essay', '2026-04-20', 'synced', '2026-04-19T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plan_entries (id, plan_id, title, estimated_min, source, slot_start, slot_end)
		VALUES ('e1', 'p1', 'Outline', 30, 'recommended', '2026-04-20T09:00:00Z', '2026-04-20T09:30:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM plans WHERE id = 'p1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM plan_entries`).Scan(&count))
	assert.Zero(t, count, "entries should cascade with their plan")
}

func TestMigrate_OrphanEntryRejected(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plan_entries (id, plan_id, title, estimated_min, source, slot_start, slot_end)
		VALUES ('e1', 'missing', 'Outline', 30, 'custom', '2026-04-20T09:00:00Z', '2026-04-20T09:30:00Z')`)
	assert.Error(t, err, "entry without a plan should violate the foreign key")
}
