package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	v := 1
	p := To(v)
	*p = 2
	assert.Equal(t, 1, v, "To must copy its argument")

	ts := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, ts, *To(ts))
}

func TestDeref(t *testing.T) {
	title := "Buy milk"
	assert.Equal(t, "Buy milk", Deref(&title, ""))
	assert.Equal(t, "", Deref[string](nil, ""))
	assert.Equal(t, 0, Deref[int](nil, 0))
	assert.Equal(t, "untitled", Deref[string](nil, "untitled"))
}
