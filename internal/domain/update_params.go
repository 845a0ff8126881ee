package domain

// UpdateParams carries a full replacement of an item's mutable fields.
// Title and Body are always overwritten; Status only takes effect when it differs
// from the stored value.
type UpdateParams struct {
	ID     string
	Title  string
	Body   string
	Status int
}

// Validate checks the identifier format and the status value.
// It returns the parsed Status so callers do not convert twice.
func (p UpdateParams) Validate() (Status, error) {
	if err := ValidateID(p.ID); err != nil {
		return 0, err
	}
	return NewStatus(p.Status)
}
