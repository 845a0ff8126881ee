package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rezkam/todo/internal/domain"
)

// itemColumns is the select list matching scanItem.
const itemColumns = "id, title, body, status, created_at, completed_at"

// timeLayout is fixed width so that text comparison orders timestamps chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func parseTimePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// scanItem reads one todo_items row selected with itemColumns.
func scanItem(row scanner) (domain.TodoItem, error) {
	var (
		item        domain.TodoItem
		status      int64
		createdAt   string
		completedAt sql.NullString
	)
	if err := row.Scan(&item.ID, &item.Title, &item.Body, &status, &createdAt, &completedAt); err != nil {
		return domain.TodoItem{}, err
	}

	var err error
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.TodoItem{}, err
	}
	if item.CompletedAt, err = parseTimePtr(completedAt); err != nil {
		return domain.TodoItem{}, err
	}
	item.Status = domain.Status(status)
	return item, nil
}
