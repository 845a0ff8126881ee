package todo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rezkam/todo/internal/domain"
)

// Default configuration values.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Config holds configuration for the Service.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

// withDefaults applies application defaults for zero or invalid values.
// Both DefaultPageSize and MaxPageSize must be > 0, and the default never
// exceeds the maximum.
func (c Config) withDefaults() Config {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = DefaultPageSize
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = MaxPageSize
	}
	c.DefaultPageSize = min(c.DefaultPageSize, c.MaxPageSize)
	return c
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger used for service-level events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the time source used for createdAt/completedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service provides business logic for todo management.
// It orchestrates operations using the Repository interface.
type Service struct {
	repo      Repository
	paginator *Paginator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new todo service.
func NewService(repo Repository, config Config, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		paginator: NewPaginator(repo, config),
		logger:    slog.Default(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListIncomplete returns a page of items that are not yet complete.
func (s *Service) ListIncomplete(ctx context.Context, query domain.PageQuery) (*domain.PageResult[domain.TodoItem], error) {
	return s.paginator.Paginate(ctx, query, domain.IncompleteFilter())
}

// ListComplete returns a page of completed items.
func (s *Service) ListComplete(ctx context.Context, query domain.PageQuery) (*domain.PageResult[domain.TodoItem], error) {
	return s.paginator.Paginate(ctx, query, domain.CompleteFilter())
}

// ListAll returns a page of items regardless of status.
func (s *Service) ListAll(ctx context.Context, query domain.PageQuery) (*domain.PageResult[domain.TodoItem], error) {
	return s.paginator.Paginate(ctx, query, domain.AllFilter())
}

// Search returns a page of items whose title or body contains query.Search.
// An empty term matches every item.
func (s *Service) Search(ctx context.Context, query domain.PageQuery) (*domain.PageResult[domain.TodoItem], error) {
	return s.paginator.Paginate(ctx, query, domain.SearchFilter(query.Search))
}

// Get retrieves a single todo item by ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.TodoItem, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	return s.repo.FindItemByID(ctx, id) // Repository returns domain errors
}

// Insert creates a new incomplete todo item.
// Title and body carry no uniqueness constraint.
func (s *Service) Insert(ctx context.Context, title, body string) (*domain.TodoItem, error) {
	idObj, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	item := &domain.TodoItem{
		ID:        idObj.String(),
		Title:     title,
		Body:      body,
		Status:    domain.StatusIncomplete,
		CreatedAt: s.now(),
	}

	var created *domain.TodoItem
	err = s.repo.Atomic(ctx, func(repo Repository) error {
		created, err = repo.CreateItem(ctx, item)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.DebugContext(ctx, "todo item created", "id", created.ID)
	return created, nil
}

// Update overwrites title and body of an existing item and applies a status change.
// completedAt is stamped when the item becomes complete, cleared when it is reopened
// and left alone when the status does not change.
func (s *Service) Update(ctx context.Context, params domain.UpdateParams) (*domain.TodoItem, error) {
	status, err := params.Validate()
	if err != nil {
		return nil, err
	}

	var updated *domain.TodoItem
	err = s.repo.Atomic(ctx, func(repo Repository) error {
		item, err := repo.FindItemByID(ctx, params.ID)
		if err != nil {
			return err
		}

		item.Title = params.Title
		item.Body = params.Body
		if item.ApplyStatus(status, s.now()) {
			s.logger.DebugContext(ctx, "todo item status changed",
				"id", item.ID,
				"status", int(status))
		}

		updated, err = repo.UpdateItem(ctx, item)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a single item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}

	return s.repo.Atomic(ctx, func(repo Repository) error {
		if _, err := repo.FindItemByID(ctx, id); err != nil {
			return err
		}
		return repo.DeleteItem(ctx, id)
	})
}

// Clear removes every item in scope ("incomplete", "complete" or "all", ignoring
// case) and returns how many were removed. An unknown scope fails with
// domain.ErrInvalidScope and removes nothing.
func (s *Service) Clear(ctx context.Context, scopeToken string) (int64, error) {
	scope, err := domain.ParseClearScope(scopeToken)
	if err != nil {
		return 0, err
	}

	var removed int64
	err = s.repo.Atomic(ctx, func(repo Repository) error {
		removed, err = repo.DeleteItems(ctx, domain.ScopeFilter(scope))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear items: %w", err)
	}

	s.logger.InfoContext(ctx, "todo items cleared",
		"scope", string(scope),
		"removed", removed)
	return removed, nil
}
