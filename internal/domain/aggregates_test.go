package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoItem_ApplyStatus(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("completing sets completedAt", func(t *testing.T) {
		item := &TodoItem{Status: StatusIncomplete}

		changed := item.ApplyStatus(StatusComplete, now)

		assert.True(t, changed)
		assert.Equal(t, StatusComplete, item.Status)
		require.NotNil(t, item.CompletedAt)
		assert.Equal(t, now, *item.CompletedAt)
		assert.True(t, item.IsComplete())
	})

	t.Run("reopening clears completedAt", func(t *testing.T) {
		completedAt := now.Add(-time.Hour)
		item := &TodoItem{Status: StatusComplete, CompletedAt: &completedAt}

		changed := item.ApplyStatus(StatusIncomplete, now)

		assert.True(t, changed)
		assert.Equal(t, StatusIncomplete, item.Status)
		assert.Nil(t, item.CompletedAt)
	})

	t.Run("same status leaves completedAt untouched", func(t *testing.T) {
		completedAt := now.Add(-time.Hour)
		item := &TodoItem{Status: StatusComplete, CompletedAt: &completedAt}

		changed := item.ApplyStatus(StatusComplete, now)

		assert.False(t, changed)
		require.NotNil(t, item.CompletedAt)
		assert.Equal(t, completedAt, *item.CompletedAt)
	})
}
