package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rezkam/todo/internal/domain"
)

// sortColumnSQL maps whitelisted sort keys to column names. Only values from
// this map are ever interpolated into ORDER BY.
var sortColumnSQL = map[domain.SortColumn]string{
	domain.SortColumnID:          "id",
	domain.SortColumnTitle:       "title",
	domain.SortColumnBody:        "body",
	domain.SortColumnStatus:      "status",
	domain.SortColumnCreatedAt:   "created_at",
	domain.SortColumnCompletedAt: "completed_at",
}

// checkRowsAffected validates that an UPDATE/DELETE operation affected at least one row.
func checkRowsAffected(rowsAffected int64, id string) error {
	if rowsAffected == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	return nil
}

// parseID guards the uuid cast in every query: a malformed id would otherwise
// surface as a driver error instead of domain.ErrNotFound.
func parseID(id string) error {
	return domain.ValidateID(id)
}

// whereClause renders filter as a WHERE clause with positional parameters.
func whereClause(filter domain.Filter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		args = append(args, statusToDB(*filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.Pattern != nil {
		args = append(args, *filter.Pattern)
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(title ILIKE $"+n+" OR body ILIKE $"+n+")")
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderByClause renders the requested ordering. id is always appended so rows
// with equal sort keys keep a stable order across pages.
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

// FindItems returns one page of items matching filter together with the total
// number of matches. Both queries read the same snapshot.
func (s *Store) FindItems(ctx context.Context, filter domain.Filter, page domain.PageRequest) (*domain.Slice, error) {
	where, args := whereClause(filter)
	orderBy, err := orderByClause(page.Sort, page.Direction)
	if err != nil {
		return nil, err
	}

	countSQL := "SELECT count(*) FROM todo_items" + where
	pageArgs := append(args[:len(args):len(args)], page.Size, page.Offset())
	pageSQL := "SELECT " + itemColumns + " FROM todo_items" + where + orderBy +
		" LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)

	result := &domain.Slice{Items: []domain.TodoItem{}}
	err = s.snapshot(ctx, "find_items", func(txStore *Store) error {
		var total int64
		if err := txStore.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count items: %w", err)
		}
		result.TotalCount = int(total)
		if total == 0 {
			return nil
		}

		rows, err := txStore.db.Query(ctx, pageSQL, pageArgs...)
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

// FindItemByID retrieves a single item. Inside a transaction the row is locked
// until commit so a read-modify-write cannot lose a concurrent update.
func (s *Store) FindItemByID(ctx context.Context, id string) (*domain.TodoItem, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}

	query := "SELECT " + itemColumns + " FROM todo_items WHERE id = $1"
	if s.tx != nil {
		query += " FOR UPDATE"
	}

	item, err := scanItem(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

// CreateItem inserts a new item and returns the stored row.
func (s *Store) CreateItem(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error) {
	if err := parseID(item.ID); err != nil {
		return nil, err
	}

	const query = `INSERT INTO todo_items (id, title, body, status, created_at, completed_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + itemColumns

	created, err := scanItem(s.db.QueryRow(ctx, query,
		item.ID,
		item.Title,
		item.Body,
		statusToDB(item.Status),
		timeToPgtype(item.CreatedAt),
		timePtrToPgtype(item.CompletedAt),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return &created, nil
}

// UpdateItem overwrites the mutable fields of an existing item.
// createdAt is never written.
func (s *Store) UpdateItem(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error) {
	if err := parseID(item.ID); err != nil {
		return nil, err
	}

	const query = `UPDATE todo_items
SET title = $2, body = $3, status = $4, completed_at = $5
WHERE id = $1
RETURNING ` + itemColumns

	updated, err := scanItem(s.db.QueryRow(ctx, query,
		item.ID,
		item.Title,
		item.Body,
		statusToDB(item.Status),
		timePtrToPgtype(item.CompletedAt),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, item.ID)
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return &updated, nil
}

// DeleteItem removes a single item.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, "DELETE FROM todo_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return checkRowsAffected(tag.RowsAffected(), id)
}

// DeleteItems removes every item matching filter and reports how many were removed.
func (s *Store) DeleteItems(ctx context.Context, filter domain.Filter) (int64, error) {
	where, args := whereClause(filter)

	tag, err := s.db.Exec(ctx, "DELETE FROM todo_items"+where, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete items: %w", err)
	}

	return tag.RowsAffected(), nil
}
