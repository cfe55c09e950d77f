package database

import (
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS search_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		countries TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL DEFAULT '',
		result_count INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		request_id TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_search_history_created_at ON search_history(created_at)`,

	`CREATE TABLE IF NOT EXISTS graph_nodes (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		type TEXT NOT NULL,
		country TEXT,
		risk_score REAL,
		details TEXT,
		ico TEXT,
		postal_code TEXT,
		virtual_seat INTEGER,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_graph_nodes_ico ON graph_nodes(ico)`,

	`CREATE TABLE IF NOT EXISTS graph_edges (
		source TEXT NOT NULL REFERENCES graph_nodes(id) ON DELETE CASCADE,
		target TEXT NOT NULL REFERENCES graph_nodes(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		PRIMARY KEY (source, target, type)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_graph_edges_target ON graph_edges(target)`,

	`CREATE TABLE IF NOT EXISTS auth_tokens (
		name TEXT PRIMARY KEY,
		token TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
}

// initSchema создает таблицы, если их еще нет
func initSchema(conn *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
