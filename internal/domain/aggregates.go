package domain

import "time"

// TodoItem is the single record managed by the service.
type TodoItem struct {
	ID    string
	Title string
	Body  string

	Status Status

	// CreatedAt is stamped once at insert and never modified.
	CreatedAt time.Time

	// CompletedAt is set when Status moves to StatusComplete and cleared when it
	// moves back to StatusIncomplete. Only the latest transition is recorded.
	CompletedAt *time.Time
}

// IsComplete reports whether the item is in the complete state.
func (item *TodoItem) IsComplete() bool {
	return item.Status == StatusComplete
}

// ApplyStatus moves the item to status and keeps CompletedAt consistent with it.
// It returns false and leaves the item untouched when status equals the stored value,
// so repeated updates with the same status do not refresh CompletedAt.
func (item *TodoItem) ApplyStatus(status Status, now time.Time) bool {
	if item.Status == status {
		return false
	}

	if status == StatusComplete {
		completedAt := now
		item.CompletedAt = &completedAt
	} else {
		item.CompletedAt = nil
	}
	item.Status = status
	return true
}
