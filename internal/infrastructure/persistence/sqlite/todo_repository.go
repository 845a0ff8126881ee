package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rezkam/todo/internal/domain"
)

var sortColumnSQL = map[domain.SortColumn]string{
	domain.SortColumnID:          "id",
	domain.SortColumnTitle:       "title",
	domain.SortColumnBody:        "body",
	domain.SortColumnStatus:      "status",
	domain.SortColumnCreatedAt:   "created_at",
	domain.SortColumnCompletedAt: "completed_at",
}

// whereClause renders filter as a WHERE clause. SQLite LIKE ignores ASCII case.
func whereClause(filter domain.Filter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, int64(*filter.Status))
	}
	if filter.Pattern != nil {
		conditions = append(conditions, "(title LIKE ? OR body LIKE ?)")
		args = append(args, *filter.Pattern, *filter.Pattern)
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderByClause renders the requested ordering with id as the final tie-breaker.
func orderByClause(sort []domain.SortColumn, direction domain.SortDirection) (string, error) {
	dir := "ASC"
	if direction == domain.SortDescending {
		dir = "DESC"
	}
	if len(sort) == 0 {
		sort = []domain.SortColumn{domain.DefaultSortColumn}
	}

	parts := make([]string, 0, len(sort)+1)
	hasID := false
	for _, column := range sort {
		name, ok := sortColumnSQL[column]
		if !ok {
			return "", fmt.Errorf("%w: %s", domain.ErrInvalidSortColumn, column)
		}
		hasID = hasID || column == domain.SortColumnID
		parts = append(parts, name+" "+dir+nullsOrder(column, direction))
	}
	if !hasID {
		parts = append(parts, "id "+dir)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// nullsOrder pins where open items land when sorting by completed_at: after
// completed ones ascending, before them descending.
func nullsOrder(column domain.SortColumn, direction domain.SortDirection) string {
	if column != domain.SortColumnCompletedAt {
		return ""
	}
	if direction == domain.SortDescending {
		return " NULLS FIRST"
	}
	return " NULLS LAST"
}

// FindItems returns one page of matching items and the total match count,
// both read inside one transaction.
func (s *Store) FindItems(ctx context.Context, filter domain.Filter, page domain.PageRequest) (*domain.Slice, error) {
	where, args := whereClause(filter)
	orderBy, err := orderByClause(page.Sort, page.Direction)
	if err != nil {
		return nil, err
	}

	countSQL := "SELECT count(*) FROM todo_items" + where
	pageSQL := "SELECT " + itemColumns + " FROM todo_items" + where + orderBy + " LIMIT ? OFFSET ?"
	pageArgs := append(args[:len(args):len(args)], page.Size, page.Offset())

	result := &domain.Slice{Items: []domain.TodoItem{}}
	err = s.executeInTransaction(ctx, "find_items", func(txStore *Store) error {
		var total int64
		if err := txStore.q.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count items: %w", err)
		}
		result.TotalCount = int(total)
		if total == 0 {
			return nil
		}

		rows, err := txStore.q.QueryContext(ctx, pageSQL, pageArgs...)
		if err != nil {
			return fmt.Errorf("failed to query items: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return fmt.Errorf("failed to scan item: %w", err)
			}
			result.Items = append(result.Items, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// FindItemByID retrieves a single item.
func (s *Store) FindItemByID(ctx context.Context, id string) (*domain.TodoItem, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	row := s.q.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM todo_items WHERE id = ?", id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

// CreateItem inserts a new item and returns the stored row.
func (s *Store) CreateItem(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error) {
	if err := domain.ValidateID(item.ID); err != nil {
		return nil, err
	}

	const query = `INSERT INTO todo_items (id, title, body, status, created_at, completed_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + itemColumns

	created, err := scanItem(s.q.QueryRowContext(ctx, query,
		item.ID,
		item.Title,
		item.Body,
		int64(item.Status),
		formatTime(item.CreatedAt),
		formatTimePtr(item.CompletedAt),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return &created, nil
}

// UpdateItem overwrites the mutable fields of an existing item.
func (s *Store) UpdateItem(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error) {
	if err := domain.ValidateID(item.ID); err != nil {
		return nil, err
	}

	const query = `UPDATE todo_items
SET title = ?, body = ?, status = ?, completed_at = ?
WHERE id = ?
RETURNING ` + itemColumns

	updated, err := scanItem(s.q.QueryRowContext(ctx, query,
		item.Title,
		item.Body,
		int64(item.Status),
		formatTimePtr(item.CompletedAt),
		item.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, item.ID)
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return &updated, nil
}

// DeleteItem removes a single item.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, "DELETE FROM todo_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	return nil
}

// DeleteItems removes every item matching filter and reports how many were removed.
func (s *Store) DeleteItems(ctx context.Context, filter domain.Filter) (int64, error) {
	where, args := whereClause(filter)

	res, err := s.q.ExecContext(ctx, "DELETE FROM todo_items"+where, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete items: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
