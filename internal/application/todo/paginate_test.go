package todo

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/rezkam/todo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWindow_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		currentPage int
		totalPages  int
		wantFirst   int
		wantLast    int
		wantVisible []int
	}{
		{
			name:        "single page",
			currentPage: 0, totalPages: 1,
			wantFirst: -1, wantLast: -1,
			wantVisible: []int{0},
		},
		{
			name:        "first of ten",
			currentPage: 0, totalPages: 10,
			wantFirst: -1, wantLast: 9,
			wantVisible: []int{0, 1, 2, 3, 4},
		},
		{
			name:        "last of ten",
			currentPage: 9, totalPages: 10,
			wantFirst: 0, wantLast: -1,
			wantVisible: []int{5, 6, 7, 8, 9},
		},
		{
			name:        "middle of ten",
			currentPage: 5, totalPages: 10,
			wantFirst: 0, wantLast: 9,
			wantVisible: []int{3, 4, 5, 6, 7},
		},
		{
			name:        "second to last of ten shifts neighbours back",
			currentPage: 8, totalPages: 10,
			wantFirst: 0, wantLast: -1,
			wantVisible: []int{4, 5, 6, 7, 8},
		},
		{
			name:        "third to last of ten keeps two preceding",
			currentPage: 7, totalPages: 10,
			wantFirst: 0, wantLast: 9,
			wantVisible: []int{5, 6, 7, 8, 9},
		},
		{
			name:        "second page of ten",
			currentPage: 1, totalPages: 10,
			wantFirst: 0, wantLast: 9,
			wantVisible: []int{0, 1, 2, 3, 4},
		},
		{
			name:        "two pages on the first",
			currentPage: 0, totalPages: 2,
			wantFirst: -1, wantLast: 1,
			wantVisible: []int{0, 1},
		},
		{
			name:        "two pages on the last",
			currentPage: 1, totalPages: 2,
			wantFirst: 0, wantLast: -1,
			wantVisible: []int{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := ComputeWindow(tt.currentPage, 20, tt.totalPages)

			assert.Equal(t, tt.wantFirst, window.FirstPageIndex)
			assert.Equal(t, tt.wantLast, window.LastPageIndex)
			assert.Equal(t, tt.wantVisible, window.VisiblePageIndices)
			assert.Equal(t, 20, window.PageSize)
		})
	}
}

func TestComputeWindow_Properties(t *testing.T) {
	for totalPages := 1; totalPages <= 25; totalPages++ {
		for current := 0; current < totalPages; current++ {
			t.Run(fmt.Sprintf("%d_of_%d", current, totalPages), func(t *testing.T) {
				window := ComputeWindow(current, 10, totalPages)
				visible := window.VisiblePageIndices

				require.NotEmpty(t, visible)
				assert.Contains(t, visible, current)
				for i := 1; i < len(visible); i++ {
					assert.Equal(t, visible[i-1]+1, visible[i], "window must be contiguous and ascending")
				}
				assert.GreaterOrEqual(t, visible[0], 0)
				assert.LessOrEqual(t, visible[len(visible)-1], totalPages-1)

				preCount := current - visible[0]
				postCount := visible[len(visible)-1] - current
				assert.LessOrEqual(t, preCount, 4)
				assert.LessOrEqual(t, postCount, 4-preCount)
				assert.Equal(t, preCount+1+postCount, len(visible))

				if preCount > 0 {
					assert.Equal(t, 0, window.FirstPageIndex)
				} else {
					assert.Equal(t, domain.NoPage, window.FirstPageIndex)
				}
				if postCount > 0 {
					assert.Equal(t, totalPages-1, window.LastPageIndex)
				} else {
					assert.Equal(t, domain.NoPage, window.LastPageIndex)
				}
			})
		}
	}
}

func TestComputeWindow_PastTheEnd(t *testing.T) {
	window := ComputeWindow(5, 20, 3)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, window.VisiblePageIndices)
	assert.Equal(t, 0, window.FirstPageIndex)
	assert.Equal(t, domain.NoPage, window.LastPageIndex)
}

func seedItems(repo *fakeRepo, n int, status domain.Status) []domain.TodoItem {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]domain.TodoItem, 0, n)
	offset := len(repo.items)
	for i := range n {
		item := domain.TodoItem{
			ID:        fmt.Sprintf("id-%03d", offset+i),
			Title:     fmt.Sprintf("title %03d", offset+i),
			Body:      fmt.Sprintf("body %03d", offset+i),
			Status:    status,
			CreatedAt: base.Add(time.Duration(offset+i) * time.Minute),
		}
		repo.items[item.ID] = item
		items = append(items, item)
	}
	return items
}

func TestPaginator_EmptyResult(t *testing.T) {
	repo := newFakeRepo()
	p := NewPaginator(repo, Config{})

	result, err := p.Paginate(context.Background(), domain.PageQuery{Page: 0, Size: 20, SortDirection: "ASC"}, domain.AllFilter())
	require.NoError(t, err)

	assert.Equal(t, domain.NoPage, result.Window.FirstPageIndex)
	assert.Equal(t, domain.NoPage, result.Window.LastPageIndex)
	assert.Empty(t, result.Window.VisiblePageIndices)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}

func TestPaginator_SingleRecord(t *testing.T) {
	repo := newFakeRepo()
	seedItems(repo, 1, domain.StatusIncomplete)
	p := NewPaginator(repo, Config{})

	result, err := p.Paginate(context.Background(), domain.PageQuery{Page: 0, Size: 20, SortDirection: "ASC"}, domain.AllFilter())
	require.NoError(t, err)

	assert.Equal(t, []int{0}, result.Window.VisiblePageIndices)
	assert.Equal(t, -1, result.Window.FirstPageIndex)
	assert.Equal(t, -1, result.Window.LastPageIndex)
	assert.Len(t, result.Items, 1)
}

func TestPaginator_ReturnsRequestedPageInStoreOrder(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedItems(repo, 45, domain.StatusIncomplete)
	p := NewPaginator(repo, Config{})

	result, err := p.Paginate(context.Background(), domain.PageQuery{
		Page:          1,
		Size:          20,
		SortColumns:   []string{"createdAt"},
		SortDirection: "desc",
	}, domain.AllFilter())
	require.NoError(t, err)

	require.Len(t, result.Items, 20)
	// Descending by creation: page 1 starts at the 21st newest item.
	assert.Equal(t, seeded[24].ID, result.Items[0].ID)
	assert.Equal(t, seeded[5].ID, result.Items[19].ID)
	assert.Equal(t, []int{0, 1, 2}, result.Window.VisiblePageIndices)
	assert.Equal(t, 0, result.Window.FirstPageIndex)
	assert.Equal(t, 2, result.Window.LastPageIndex)

	require.Len(t, repo.findItemsCalls, 1)
	assert.Equal(t, domain.SortDescending, repo.findItemsCalls[0].Direction)
	assert.Equal(t, []domain.SortColumn{domain.SortColumnCreatedAt}, repo.findItemsCalls[0].Sort)
}

func TestPaginator_StrictDirection(t *testing.T) {
	repo := newFakeRepo()
	seedItems(repo, 3, domain.StatusIncomplete)
	p := NewPaginator(repo, Config{})

	for _, direction := range []string{"sideways", ""} {
		_, err := p.Paginate(context.Background(), domain.PageQuery{Size: 20, SortDirection: direction}, domain.AllFilter())
		assert.ErrorIs(t, err, domain.ErrUnsupportedDirection)
	}
	assert.Empty(t, repo.findItemsCalls, "store must not be queried with an invalid direction")
}

func TestPaginator_DirectionCaseInsensitive(t *testing.T) {
	repo := newFakeRepo()
	seedItems(repo, 3, domain.StatusIncomplete)
	p := NewPaginator(repo, Config{})

	for _, direction := range []string{"desc", "DESC", "Desc"} {
		_, err := p.Paginate(context.Background(), domain.PageQuery{Size: 20, SortDirection: direction}, domain.AllFilter())
		require.NoError(t, err)
	}

	require.Len(t, repo.findItemsCalls, 3)
	for _, call := range repo.findItemsCalls {
		assert.Equal(t, domain.SortDescending, call.Direction)
	}
}

func TestPaginator_InvalidSortColumn(t *testing.T) {
	repo := newFakeRepo()
	p := NewPaginator(repo, Config{})

	_, err := p.Paginate(context.Background(), domain.PageQuery{
		Size:          20,
		SortColumns:   []string{"priority"},
		SortDirection: "ASC",
	}, domain.AllFilter())

	assert.ErrorIs(t, err, domain.ErrInvalidSortColumn)
	assert.Empty(t, repo.findItemsCalls)
}

func TestPaginator_PageSizePolicy(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		query    domain.PageQuery
		wantSize int
		wantPage int
	}{
		{"zero size uses default", Config{}, domain.PageQuery{Size: 0}, DefaultPageSize, 0},
		{"negative size uses default", Config{}, domain.PageQuery{Size: -5}, DefaultPageSize, 0},
		{"size above max is clamped", Config{}, domain.PageQuery{Size: 1000}, MaxPageSize, 0},
		{"configured default", Config{DefaultPageSize: 7, MaxPageSize: 50}, domain.PageQuery{}, 7, 0},
		{"default never exceeds max", Config{DefaultPageSize: 70, MaxPageSize: 50}, domain.PageQuery{}, 50, 0},
		{"negative page becomes zero", Config{}, domain.PageQuery{Page: -3, Size: 10}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			p := NewPaginator(repo, tt.config)
			tt.query.SortDirection = "ASC"

			result, err := p.Paginate(context.Background(), tt.query, domain.AllFilter())
			require.NoError(t, err)

			require.Len(t, repo.findItemsCalls, 1)
			assert.Equal(t, tt.wantSize, repo.findItemsCalls[0].Size)
			assert.Equal(t, tt.wantPage, repo.findItemsCalls[0].Page)
			assert.Equal(t, tt.wantSize, result.Window.PageSize)
		})
	}
}

func TestPaginator_PageOffsetOverflow(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	p := NewPaginator(repo, Config{})

	largest := math.MaxInt / MaxPageSize
	result, err := p.Paginate(ctx, domain.PageQuery{Page: largest, Size: MaxPageSize, SortDirection: "ASC"}, domain.AllFilter())
	require.NoError(t, err, "the last page whose offset fits is still served")
	assert.Empty(t, result.Items)
	require.Len(t, repo.findItemsCalls, 1)
	assert.Positive(t, repo.findItemsCalls[0].Offset())

	for _, page := range []int{largest + 1, 100000000000000000, math.MaxInt} {
		_, err := p.Paginate(ctx, domain.PageQuery{Page: page, Size: MaxPageSize, SortDirection: "ASC"}, domain.AllFilter())
		assert.ErrorIs(t, err, domain.ErrPageOutOfRange, "page %d", page)
	}
	assert.Len(t, repo.findItemsCalls, 1, "the store is never asked for an overflowing offset")
}
