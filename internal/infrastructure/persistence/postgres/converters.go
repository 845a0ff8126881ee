package postgres

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rezkam/todo/internal/domain"
)

// itemColumns is the select list matching scanItem.
const itemColumns = "id::text, title, body, status, created_at, completed_at"

// timeToPgtype converts time.Time to pgtype.Timestamptz.
func timeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

// pgtypeToTime converts pgtype.Timestamptz to time.Time (zero if invalid).
// Always returns time in UTC location for consistent timezone handling.
func pgtypeToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

// pgtypeToTimePtr converts pgtype.Timestamptz to *time.Time (nil if invalid).
func pgtypeToTimePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	utcTime := t.Time.UTC()
	return &utcTime
}

// timePtrToPgtype converts *time.Time to pgtype.Timestamptz.
// Nil pointers become NULL.
func timePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

// statusToDB converts a domain status to its SMALLINT column value.
func statusToDB(s domain.Status) int16 {
	return int16(s)
}

// scanItem reads one todo_items row selected with itemColumns.
func scanItem(row pgx.Row) (domain.TodoItem, error) {
	var (
		item        domain.TodoItem
		status      int16
		createdAt   pgtype.Timestamptz
		completedAt pgtype.Timestamptz
	)
	if err := row.Scan(&item.ID, &item.Title, &item.Body, &status, &createdAt, &completedAt); err != nil {
		return domain.TodoItem{}, err
	}

	item.Status = domain.Status(status)
	item.CreatedAt = pgtypeToTime(createdAt)
	item.CompletedAt = pgtypeToTimePtr(completedAt)
	return item, nil
}
