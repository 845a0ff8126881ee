package todo

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/rezkam/todo/internal/domain"
)

// fakeRepo is an in-memory Repository used by service and pagination tests.
// Atomic restores the previous state when the callback fails.
type fakeRepo struct {
	items map[string]domain.TodoItem

	findItemsCalls []domain.PageRequest
	lastFilter     domain.Filter
	atomicCalls    int
	failDelete     error
	failUpdate     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]domain.TodoItem)}
}

func (r *fakeRepo) FindItems(ctx context.Context, filter domain.Filter, page domain.PageRequest) (*domain.Slice, error) {
	r.findItemsCalls = append(r.findItemsCalls, page)
	r.lastFilter = filter

	var matched []domain.TodoItem
	for _, item := range r.items {
		if matches(item, filter) {
			matched = append(matched, item)
		}
	}

	slices.SortFunc(matched, func(a, b domain.TodoItem) int {
		for _, column := range page.Sort {
			c := compareColumn(a, b, column)
			if page.Direction == domain.SortDescending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return strings.Compare(a.ID, b.ID)
	})

	start := max(min(page.Offset(), len(matched)), 0)
	end := min(start+page.Size, len(matched))

	return &domain.Slice{
		Items:      slices.Clone(matched[start:end]),
		TotalCount: len(matched),
	}, nil
}

func (r *fakeRepo) FindItemByID(ctx context.Context, id string) (*domain.TodoItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *fakeRepo) CreateItem(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error) {
	r.items[item.ID] = *item
	created := *item
	return &created, nil
}

func (r *fakeRepo) UpdateItem(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error) {
	if r.failUpdate != nil {
		return nil, r.failUpdate
	}
	if _, ok := r.items[item.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.items[item.ID] = *item
	updated := *item
	return &updated, nil
}

func (r *fakeRepo) DeleteItem(ctx context.Context, id string) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) DeleteItems(ctx context.Context, filter domain.Filter) (int64, error) {
	var removed int64
	for id, item := range r.items {
		if matches(item, filter) {
			delete(r.items, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeRepo) Atomic(ctx context.Context, fn func(repo Repository) error) error {
	r.atomicCalls++
	snapshot := maps.Clone(r.items)
	if err := fn(r); err != nil {
		r.items = snapshot
		return err
	}
	return nil
}

func matches(item domain.TodoItem, filter domain.Filter) bool {
	if filter.Status != nil && item.Status != *filter.Status {
		return false
	}
	if filter.Pattern != nil {
		term := strings.Trim(*filter.Pattern, "%")
		return strings.Contains(item.Title, term) || strings.Contains(item.Body, term)
	}
	return true
}

func compareColumn(a, b domain.TodoItem, column domain.SortColumn) int {
	switch column {
	case domain.SortColumnID:
		return strings.Compare(a.ID, b.ID)
	case domain.SortColumnTitle:
		return strings.Compare(a.Title, b.Title)
	case domain.SortColumnBody:
		return strings.Compare(a.Body, b.Body)
	case domain.SortColumnStatus:
		return cmp.Compare(a.Status, b.Status)
	case domain.SortColumnCompletedAt:
		switch {
		case a.CompletedAt == nil && b.CompletedAt == nil:
			return 0
		case a.CompletedAt == nil:
			return 1
		case b.CompletedAt == nil:
			return -1
		}
		return a.CompletedAt.Compare(*b.CompletedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

// Compile-time verification that fakeRepo implements Repository.
var _ Repository = (*fakeRepo)(nil)
