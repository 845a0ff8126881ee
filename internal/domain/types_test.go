package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters(t *testing.T) {
	incomplete := IncompleteFilter()
	require.NotNil(t, incomplete.Status)
	assert.Equal(t, StatusIncomplete, *incomplete.Status)
	assert.Nil(t, incomplete.Pattern)

	complete := CompleteFilter()
	require.NotNil(t, complete.Status)
	assert.Equal(t, StatusComplete, *complete.Status)

	all := AllFilter()
	assert.Nil(t, all.Status)
	assert.Nil(t, all.Pattern)

	search := SearchFilter("milk")
	require.NotNil(t, search.Pattern)
	assert.Equal(t, "%milk%", *search.Pattern)
	assert.Nil(t, search.Status)

	empty := SearchFilter("")
	require.NotNil(t, empty.Pattern)
	assert.Equal(t, "%%", *empty.Pattern)
}

func TestScopeFilter(t *testing.T) {
	assert.Equal(t, StatusIncomplete, *ScopeFilter(ClearScopeIncomplete).Status)
	assert.Equal(t, StatusComplete, *ScopeFilter(ClearScopeComplete).Status)
	assert.Equal(t, AllFilter(), ScopeFilter(ClearScopeAll))
}

func TestSlice_TotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{200, 20, 10},
		{5, 0, 0},
	}

	for _, tt := range tests {
		s := &Slice{TotalCount: tt.total}
		assert.Equal(t, tt.want, s.TotalPages(tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 60, PageRequest{Page: 3, Size: 20}.Offset())
}

func TestEmptyPageWindow(t *testing.T) {
	window := EmptyPageWindow(20)
	assert.Equal(t, NoPage, window.FirstPageIndex)
	assert.Equal(t, NoPage, window.LastPageIndex)
	assert.Equal(t, 20, window.PageSize)
	assert.NotNil(t, window.VisiblePageIndices)
	assert.Empty(t, window.VisiblePageIndices)
}
