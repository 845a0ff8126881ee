package domain

import "errors"

// Domain errors returned by the service and repository implementations.

var (
	// ErrNotFound indicates the requested todo item does not exist.
	ErrNotFound = errors.New("todo item not found")

	// ErrInvalidScope indicates a clear scope outside incomplete/complete/all.
	ErrInvalidScope = errors.New("invalid clear scope, only incomplete/complete/all are supported")

	// ErrUnsupportedDirection indicates a sort direction other than ASC/DESC.
	ErrUnsupportedDirection = errors.New("unsupported sort direction, only ASC/DESC (case-insensitive) are supported")

	// ErrInvalidStatus indicates a status value outside 0 (incomplete) and 1 (complete).
	ErrInvalidStatus = errors.New("invalid status, only 0 (incomplete) and 1 (complete) are supported")

	// ErrPageOutOfRange indicates a page index whose row offset does not fit in an int.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrInvalidSortColumn indicates a sort column that is not part of the todo item schema.
	ErrInvalidSortColumn = errors.New("invalid sort column")
)
