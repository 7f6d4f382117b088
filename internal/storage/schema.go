package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const migrationTable = "schema_migrations"

type migration struct {
	name  string
	stmts []string
}

var migrations = []migration{
	{
		name: "001_player_tasks",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS player (
				key TEXT PRIMARY KEY,
				current_hp INTEGER NOT NULL DEFAULT 100,
				max_hp INTEGER NOT NULL DEFAULT 100,
				current_mp INTEGER NOT NULL DEFAULT 100,
				max_mp INTEGER NOT NULL DEFAULT 100,
				xp_total INTEGER NOT NULL DEFAULT 0,
				level INTEGER NOT NULL DEFAULT 1,
				level_int INTEGER NOT NULL DEFAULT 1,
				level_speed INTEGER NOT NULL DEFAULT 1,
				int_exp INTEGER NOT NULL DEFAULT 0,
				speed_exp INTEGER NOT NULL DEFAULT 0
			);`,
			`CREATE TABLE IF NOT EXISTS tasks (
				id TEXT PRIMARY KEY,
				position INTEGER NOT NULL,
				parent_id TEXT NULL,
				title TEXT NOT NULL,
				detail TEXT,

				kind TEXT NOT NULL,
				size TEXT NOT NULL,
				completed INTEGER NOT NULL DEFAULT 0,
				priority INTEGER NOT NULL DEFAULT 1,

				created_at DATETIME NOT NULL,
				completed_at DATETIME,
				due_date DATETIME,

				child_ids TEXT,
				tags TEXT,
				staked_points INTEGER NOT NULL DEFAULT 0
			);`,
			`CREATE INDEX IF NOT EXISTS idx_tasks_parent_id ON tasks(parent_id);`,
			`CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);`,
		},
	},
	{
		// Audit trail of everything credited or debited by the engine.
		name: "002_rewards",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS rewards (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				task_id TEXT NOT NULL,
				task_title TEXT NOT NULL,
				reason TEXT NOT NULL,
				at DATETIME NOT NULL,
				xp INTEGER NOT NULL DEFAULT 0,
				hp INTEGER NOT NULL DEFAULT 0,
				mp INTEGER NOT NULL DEFAULT 0,
				int_exp INTEGER NOT NULL DEFAULT 0,
				speed_exp INTEGER NOT NULL DEFAULT 0
			);`,
			`CREATE INDEX IF NOT EXISTS idx_rewards_at ON rewards(at);`,
		},
	},
	{
		name: "003_overdue_penalty",
		stmts: []string{
			`ALTER TABLE tasks ADD COLUMN overdue_penalized INTEGER NOT NULL DEFAULT 0;`,
		},
	},
}

// Migrate applies every migration not yet recorded in schema_migrations.
// Each migration runs in its own transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		name TEXT PRIMARY KEY,
		applied_at INTEGER NOT NULL
	);`, migrationTable)
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, m := range migrations {
		applied, err := migrationApplied(ctx, db, m.name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		err = WithTx(ctx, db, func(tx *sql.Tx) error {
			for _, stmt := range m.stmts {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("migrate %s: %w", m.name, err)
				}
			}
			_, err := tx.ExecContext(ctx,
				fmt.Sprintf(`INSERT INTO %s (name, applied_at) VALUES (?, ?)`, migrationTable),
				m.name, time.Now().Unix(),
			)
			if err != nil {
				return fmt.Errorf("record migration %s: %w", m.name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func migrationApplied(ctx context.Context, db *sql.DB, name string) (bool, error) {
	row := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT 1 FROM %s WHERE name = ?`, migrationTable), name)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check migration %s: %w", name, err)
	}
	return true, nil
}
