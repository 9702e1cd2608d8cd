package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and
// re-run on every open; ALTER TABLE duplicates are tolerated so the
// list can grow append-only.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		task_name   TEXT NOT NULL,
		course_name TEXT NOT NULL DEFAULT '',
		day         TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'pending_sync'
		            CHECK(status IN ('synced','pending_sync')),
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_day ON plans(day)`,

	`CREATE TABLE IF NOT EXISTS plan_entries (
		id            TEXT PRIMARY KEY,
		plan_id       TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		title         TEXT NOT NULL,
		estimated_min INTEGER NOT NULL,
		source        TEXT NOT NULL
		              CHECK(source IN ('recommended','custom')),
		slot_start    TEXT NOT NULL,
		slot_end      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_entries_plan ON plan_entries(plan_id)`,
}
