package todo

import (
	"context"

	"github.com/rezkam/todo/internal/domain"
)

// PageReader is the read side the pagination engine depends on.
type PageReader interface {
	// FindItems returns one page of items matching filter, ordered by page.Sort in
	// page.Direction, together with the total number of matching items.
	// The count and the page are read from the same snapshot.
	FindItems(ctx context.Context, filter domain.Filter, page domain.PageRequest) (*domain.Slice, error)
}

// Repository defines storage operations for todo items.
// All create/update operations return the entity as persisted.
type Repository interface {
	PageReader

	// FindItemByID retrieves a single todo item by its ID.
	// Inside Atomic the row is locked until the transaction ends.
	// Returns domain.ErrNotFound if the item doesn't exist.
	FindItemByID(ctx context.Context, id string) (*domain.TodoItem, error)

	// CreateItem inserts a new todo item.
	CreateItem(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error)

	// UpdateItem overwrites title, body, status and completed_at of an existing item.
	// Returns domain.ErrNotFound if the item doesn't exist.
	UpdateItem(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error)

	// DeleteItem removes a single item.
	// Returns domain.ErrNotFound if the item doesn't exist.
	DeleteItem(ctx context.Context, id string) error

	// DeleteItems removes every item matching filter and returns how many were removed.
	DeleteItems(ctx context.Context, filter domain.Filter) (int64, error)

	// Atomic executes fn within a single transaction.
	// Commits if fn returns nil, rolls back otherwise.
	Atomic(ctx context.Context, fn func(repo Repository) error) error
}
