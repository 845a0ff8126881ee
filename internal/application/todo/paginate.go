package todo

import (
	"context"
	"fmt"
	"math"

	"github.com/rezkam/todo/internal/domain"
)

const (
	// maxWindowNeighbours is how many page indices besides the current one a window shows.
	maxWindowNeighbours = 4

	// nearEndDistance is the distance to the last page below which the window
	// shifts its neighbours to the preceding side.
	nearEndDistance = 2

	// defaultPrecedingPages is how many preceding indices are shown away from the end.
	defaultPrecedingPages = 2
)

// Paginator turns a PageQuery into a page of records plus its navigation window.
type Paginator struct {
	reader PageReader
	config Config
}

// NewPaginator creates a pagination engine reading from reader.
// Applies application defaults for zero or invalid config values.
func NewPaginator(reader PageReader, config Config) *Paginator {
	return &Paginator{
		reader: reader,
		config: config.withDefaults(),
	}
}

// Paginate fetches the page described by query from the records matching filter.
// The sort direction is resolved strictly: an unknown token fails with
// domain.ErrUnsupportedDirection before the store is queried.
func (p *Paginator) Paginate(ctx context.Context, query domain.PageQuery, filter domain.Filter) (*domain.PageResult[domain.TodoItem], error) {
	request, err := p.pageRequest(query)
	if err != nil {
		return nil, err
	}

	slice, err := p.reader.FindItems(ctx, filter, request)
	if err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}

	totalPages := slice.TotalPages(request.Size)
	if totalPages == 0 {
		return &domain.PageResult[domain.TodoItem]{
			Window: domain.EmptyPageWindow(request.Size),
			Items:  []domain.TodoItem{},
		}, nil
	}

	items := slice.Items
	if items == nil {
		items = []domain.TodoItem{}
	}

	return &domain.PageResult[domain.TodoItem]{
		Window: ComputeWindow(request.Page, request.Size, totalPages),
		Items:  items,
	}, nil
}

// pageRequest validates query and applies the page size policy.
func (p *Paginator) pageRequest(query domain.PageQuery) (domain.PageRequest, error) {
	direction, err := domain.ParseSortDirection(query.SortDirection)
	if err != nil {
		return domain.PageRequest{}, err
	}

	columns, err := domain.ParseSortColumns(query.SortColumns)
	if err != nil {
		return domain.PageRequest{}, err
	}

	size := query.Size
	if size <= 0 {
		size = p.config.DefaultPageSize
	}
	size = min(size, p.config.MaxPageSize)

	page := max(query.Page, 0)
	if page > math.MaxInt/size {
		return domain.PageRequest{}, fmt.Errorf("%w: page %d with size %d", domain.ErrPageOutOfRange, page, size)
	}

	return domain.PageRequest{
		Page:      page,
		Size:      size,
		Sort:      columns,
		Direction: direction,
	}, nil
}

// ComputeWindow derives the navigation window for currentPage out of totalPages.
// totalPages must be positive.
//
// Up to four neighbours are shown around the current page. Normally at most two of
// them precede it; within two pages of the end up to four precede it instead. The
// first/last indices are only reported when the window has neighbours on that side.
func ComputeWindow(currentPage, pageSize, totalPages int) domain.PageWindow {
	lastPage := totalPages - 1
	remaining := lastPage - currentPage

	precedingCap := defaultPrecedingPages
	if remaining < nearEndDistance {
		precedingCap = maxWindowNeighbours
	}
	preCount := min(precedingCap, currentPage)
	postCount := max(min(maxWindowNeighbours-preCount, remaining), 0)

	window := domain.PageWindow{
		FirstPageIndex:     domain.NoPage,
		PageSize:           pageSize,
		LastPageIndex:      domain.NoPage,
		VisiblePageIndices: make([]int, 0, preCount+1+postCount),
	}
	if preCount > 0 {
		window.FirstPageIndex = 0
	}
	if postCount > 0 {
		window.LastPageIndex = lastPage
	}

	for page := currentPage - preCount; page <= currentPage+postCount; page++ {
		window.VisiblePageIndices = append(window.VisiblePageIndices, page)
	}

	return window
}
