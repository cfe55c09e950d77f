package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const defaultHistoryLimit = 50

// HistoryEntry запись истории поиска
type HistoryEntry struct {
	ID          int64     `json:"id"`
	Query       string    `json:"query"`
	Countries   []string  `json:"countries"`
	Path        string    `json:"path"`
	ResultCount int       `json:"result_count"`
	DurationMs  int64     `json:"duration_ms"`
	RequestID   string    `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// History журнал выполненных поисков
type History struct {
	db *DB
}

// History возвращает журнал поиска поверх базы
func (db *DB) History() *History {
	return &History{db: db}
}

// Record сохраняет запись и возвращает ее идентификатор
func (h *History) Record(ctx context.Context, entry HistoryEntry) (int64, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = h.db.now().UTC()
	}

	res, err := h.db.conn.ExecContext(ctx, `
		INSERT INTO search_history (query, countries, path, result_count, duration_ms, request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Query,
		strings.Join(entry.Countries, ","),
		entry.Path,
		entry.ResultCount,
		entry.DurationMs,
		entry.RequestID,
		entry.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record search: %w", err)
	}
	return res.LastInsertId()
}

// Recent возвращает последние записи, новые первыми
func (h *History) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := h.db.conn.QueryContext(ctx, `
		SELECT id, query, countries, path, result_count, duration_ms, request_id, created_at
		FROM search_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var (
			e         HistoryEntry
			countries string
			requestID sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Query, &countries, &e.Path, &e.ResultCount, &e.DurationMs, &requestID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search history: %w", err)
		}
		e.RequestID = nullString(requestID)
		e.Countries = splitCountries(countries)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count возвращает число записей в журнале
func (h *History) Count(ctx context.Context) (int, error) {
	var count int
	if err := h.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM search_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count search history: %w", err)
	}
	return count, nil
}

func splitCountries(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}
