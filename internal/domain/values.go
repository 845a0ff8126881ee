package domain

// Status represents the completion state of a todo item.
// Persisted and serialized as its integer value.
type Status int

const (
	StatusIncomplete Status = 0
	StatusComplete   Status = 1
)

// ClearScope selects which records a clear operation removes.
// Value object - immutable string enum.
type ClearScope string

const (
	ClearScopeIncomplete ClearScope = "incomplete"
	ClearScopeComplete   ClearScope = "complete"
	ClearScopeAll        ClearScope = "all"
)

// SortDirection is the canonical ordering direction used by the record store.
// Value object - immutable string enum.
type SortDirection string

const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// DefaultSortDirection is substituted by the lenient resolver for unknown tokens.
const DefaultSortDirection = SortAscending

// SortColumn is a whitelisted, storage-level column name usable in ORDER BY.
type SortColumn string

const (
	SortColumnID          SortColumn = "id"
	SortColumnTitle       SortColumn = "title"
	SortColumnBody        SortColumn = "body"
	SortColumnStatus      SortColumn = "status"
	SortColumnCreatedAt   SortColumn = "created_at"
	SortColumnCompletedAt SortColumn = "completed_at"
)

// DefaultSortColumn orders by insertion time when the caller names no column.
const DefaultSortColumn = SortColumnCreatedAt
