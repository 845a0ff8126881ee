package handler

import (
	"fmt"
	"time"
)

// TimestampLayout is the wire format for item timestamps, always in UTC.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp serializes a time as TimestampLayout in UTC.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", s)
	}
	parsed, err := time.ParseInLocation(TimestampLayout, s[1:len(s)-1], time.UTC)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// PageQueryRequest is the body of the four list endpoints.
type PageQueryRequest struct {
	Page          int      `json:"page"`
	Size          int      `json:"size"`
	SortColumns   []string `json:"sortColumns"`
	SortDirection string   `json:"sortDirection"`
	Search        string   `json:"search"`
}

// InsertRequest is the body of /insert.
type InsertRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// UpdateRequest is the body of /update. Status is required.
type UpdateRequest struct {
	ID     string  `json:"id"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Status *int    `json:"status"`
}

// IDRequest is the body of /get and /delete.
type IDRequest struct {
	ID string `json:"id"`
}

// ClearRequest is the body of /clear.
type ClearRequest struct {
	Content string `json:"content"`
}

// ItemDTO is the wire representation of a todo item.
type ItemDTO struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Status     int        `json:"status"`
	CreateAt   Timestamp  `json:"createAt"`
	CompleteAt *Timestamp `json:"completeAt"`
}

// PagesDTO is the wire representation of a page window.
type PagesDTO struct {
	First int   `json:"first"`
	Size  int   `json:"size"`
	Last  int   `json:"last"`
	Nums  []int `json:"nums"`
}

// PageResultDTO is the response of the list endpoints.
type PageResultDTO struct {
	Pages PagesDTO  `json:"pages"`
	Body  []ItemDTO `json:"body"`
}
