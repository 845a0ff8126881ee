package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// NewStatus validates and creates a Status from its wire value.
func NewStatus(v int) (Status, error) {
	status := Status(v)

	switch status {
	case StatusIncomplete, StatusComplete:
		return status, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidStatus, v)
	}
}

// ParseClearScope validates a clear scope token, ignoring case.
func ParseClearScope(s string) (ClearScope, error) {
	scope := ClearScope(strings.ToLower(s))

	switch scope {
	case ClearScopeIncomplete, ClearScopeComplete, ClearScopeAll:
		return scope, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, s)
	}
}

// ParseSortDirection is the strict direction resolver: it matches ASC/DESC ignoring
// case and fails with ErrUnsupportedDirection for anything else, including "".
func ParseSortDirection(s string) (SortDirection, error) {
	direction := SortDirection(strings.ToUpper(s))

	switch direction {
	case SortAscending, SortDescending:
		return direction, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDirection, s)
	}
}

// NormalizeSortDirection is the lenient direction resolver. Known tokens come back in
// canonical upper case; anything else is logged as a warning and replaced by
// DefaultSortDirection. It never fails.
func NormalizeSortDirection(ctx context.Context, logger *slog.Logger, s string) string {
	direction, err := ParseSortDirection(s)
	if err == nil {
		return string(direction)
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, "unsupported sort direction, falling back to default",
		"direction", s,
		"default", DefaultSortDirection)
	return string(DefaultSortDirection)
}

// sortColumnAliases maps accepted client spellings onto storage columns.
var sortColumnAliases = map[string]SortColumn{
	"id":           SortColumnID,
	"title":        SortColumnTitle,
	"body":         SortColumnBody,
	"status":       SortColumnStatus,
	"createdat":    SortColumnCreatedAt,
	"created_at":   SortColumnCreatedAt,
	"createat":     SortColumnCreatedAt,
	"completedat":  SortColumnCompletedAt,
	"completed_at": SortColumnCompletedAt,
	"completeat":   SortColumnCompletedAt,
}

// ParseSortColumns maps client column names onto whitelisted storage columns.
// Duplicates are dropped keeping the first occurrence. An empty input yields
// DefaultSortColumn.
func ParseSortColumns(names []string) ([]SortColumn, error) {
	if len(names) == 0 {
		return []SortColumn{DefaultSortColumn}, nil
	}

	columns := make([]SortColumn, 0, len(names))
	seen := make(map[SortColumn]bool, len(names))
	for _, name := range names {
		column, ok := sortColumnAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortColumn, name)
		}
		if seen[column] {
			continue
		}
		seen[column] = true
		columns = append(columns, column)
	}

	return columns, nil
}

// ValidateID checks that id is a well-formed UUID. Every stored id is one, so a
// malformed id names no item and fails with ErrNotFound.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: malformed id %q: %v", ErrNotFound, id, err)
	}
	return nil
}
