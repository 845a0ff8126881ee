package domain

// PageQuery is the client-facing request for one page of todo items.
//
// Common use cases:
//   - "First page, newest first": Page=0, Size=20, SortColumns=["createdAt"], SortDirection="desc"
//   - Full-text search: Search="groceries" matches title or body
type PageQuery struct {
	Page          int      // 0-based page index
	Size          int      // Page size (<= 0 uses the configured default)
	SortColumns   []string // Client column names, applied in order
	SortDirection string   // Raw direction token, resolved strictly by the pagination engine
	Search        string   // Free-text term, only used by search listings
}

// Filter restricts the records a page is drawn from.
// A zero Filter matches every record.
type Filter struct {
	Status  *Status // Filter by status (nil = any)
	Pattern *string // LIKE pattern matched against title OR body (nil = no text filter)
}

// IncompleteFilter matches items with StatusIncomplete.
func IncompleteFilter() Filter {
	status := StatusIncomplete
	return Filter{Status: &status}
}

// CompleteFilter matches items with StatusComplete.
func CompleteFilter() Filter {
	status := StatusComplete
	return Filter{Status: &status}
}

// AllFilter matches every item.
func AllFilter() Filter {
	return Filter{}
}

// SearchFilter matches items whose title or body contains term.
// The term is wrapped as %term% without escaping, so an empty term matches everything
// and wildcard characters in the term keep their LIKE meaning.
func SearchFilter(term string) Filter {
	pattern := "%" + term + "%"
	return Filter{Pattern: &pattern}
}

// ScopeFilter returns the filter selecting the records a clear scope removes.
func ScopeFilter(scope ClearScope) Filter {
	switch scope {
	case ClearScopeIncomplete:
		return IncompleteFilter()
	case ClearScopeComplete:
		return CompleteFilter()
	default:
		return AllFilter()
	}
}

// PageRequest is the validated, storage-level form of a PageQuery.
type PageRequest struct {
	Page      int           // 0-based page index, never negative
	Size      int           // Page size, always > 0
	Sort      []SortColumn  // Whitelisted columns, at least one
	Direction SortDirection // Applied to every column in Sort
}

// Offset returns the number of rows preceding the requested page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Slice is one page of records plus the total number of matching records.
type Slice struct {
	Items      []TodoItem
	TotalCount int
}

// TotalPages returns how many pages of the given size the matching records span.
func (s *Slice) TotalPages(size int) int {
	if size <= 0 || s.TotalCount <= 0 {
		return 0
	}
	return (s.TotalCount + size - 1) / size
}

// NoPage marks an unset first/last page index in a PageWindow.
const NoPage = -1

// PageWindow summarizes which page indices a client should render as navigation.
type PageWindow struct {
	FirstPageIndex     int   // 0 when a jump-to-first control is needed, else NoPage
	PageSize           int   // Effective page size
	LastPageIndex      int   // Last page index when a jump-to-last control is needed, else NoPage
	VisiblePageIndices []int // Contiguous ascending run containing the current page
}

// EmptyPageWindow returns the window reported when nothing matched.
func EmptyPageWindow(pageSize int) PageWindow {
	return PageWindow{
		FirstPageIndex:     NoPage,
		PageSize:           pageSize,
		LastPageIndex:      NoPage,
		VisiblePageIndices: []int{},
	}
}

// PageResult is one page of records together with its navigation window.
type PageResult[T any] struct {
	Window PageWindow
	Items  []T
}
