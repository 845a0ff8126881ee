package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamptzConversions(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	local := time.Date(2024, 6, 1, 14, 0, 0, 0, berlin)

	t.Run("values are stored and read back in UTC", func(t *testing.T) {
		ts := timeToPgtype(local)
		require.True(t, ts.Valid)
		assert.Equal(t, time.UTC, ts.Time.Location())

		back := pgtypeToTime(ts)
		assert.True(t, back.Equal(local))
		assert.Equal(t, time.UTC, back.Location())
	})

	t.Run("NULL maps to zero time", func(t *testing.T) {
		assert.True(t, pgtypeToTime(pgtype.Timestamptz{}).IsZero())
	})

	t.Run("nil pointer maps to NULL and back", func(t *testing.T) {
		ts := timePtrToPgtype(nil)
		assert.False(t, ts.Valid)
		assert.Nil(t, pgtypeToTimePtr(ts))
	})

	t.Run("pointer round trip", func(t *testing.T) {
		ts := timePtrToPgtype(&local)
		got := pgtypeToTimePtr(ts)
		require.NotNil(t, got)
		assert.True(t, got.Equal(local))
		assert.Equal(t, time.UTC, got.Location())
	})
}
