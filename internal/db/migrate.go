package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent: CREATE
// statements use IF NOT EXISTS and ALTER TABLE duplicate-column errors are
// tolerated, so the full list re-runs safely on every startup.
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
	`CREATE TABLE IF NOT EXISTS daily_reports (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL UNIQUE,
		condition  INTEGER NOT NULL DEFAULT 3,
		work_start TEXT NOT NULL DEFAULT '',
		work_end   TEXT NOT NULL DEFAULT '',
		location   TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id            TEXT PRIMARY KEY,
		parent_id     TEXT REFERENCES goals(id) ON DELETE SET NULL,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		period        TEXT NOT NULL
		              CHECK(period IN ('yearly','monthly','weekly','daily')),
		target_date   TEXT,
		status        TEXT NOT NULL DEFAULT 'active'
		              CHECK(status IN ('active','achieved','abandoned')),
		progress_rate INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		report_id     TEXT NOT NULL REFERENCES daily_reports(id) ON DELETE CASCADE,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		category      TEXT NOT NULL
		              CHECK(category IN ('continuous','short_term')),
		priority      INTEGER NOT NULL DEFAULT 3,
		progress_rate INTEGER NOT NULL DEFAULT 0,
		status        TEXT NOT NULL DEFAULT 'planned'
		              CHECK(status IN ('planned','in_progress','completed','cancelled')),
		estimated_min INTEGER NOT NULL DEFAULT 0,
		actual_min    INTEGER NOT NULL DEFAULT 0,
		goal_id       TEXT REFERENCES goals(id) ON DELETE SET NULL,
		order_index   INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phone_calls (
		id          TEXT PRIMARY KEY,
		report_id   TEXT NOT NULL REFERENCES daily_reports(id) ON DELETE CASCADE,
		caller      TEXT NOT NULL,
		subject     TEXT NOT NULL DEFAULT '',
		memo        TEXT NOT NULL DEFAULT '',
		received_at TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reflections (
		id         TEXT PRIMARY KEY,
		report_id  TEXT NOT NULL REFERENCES daily_reports(id) ON DELETE CASCADE,
		content    TEXT NOT NULL,
		mood       INTEGER NOT NULL DEFAULT 3,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS carryover_resolutions (
		date        TEXT PRIMARY KEY,
		outcome     TEXT NOT NULL CHECK(outcome IN ('dismissed','moved')),
		moved_count INTEGER NOT NULL DEFAULT 0,
		resolved_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_report ON tasks(report_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_goal ON tasks(goal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_phone_calls_report ON phone_calls(report_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reflections_report ON reflections(report_id)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_parent ON goals(parent_id)`,
}
