package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	t.Run("UTC", func(t *testing.T) {
		moment := time.Date(2024, time.March, 15, 13, 42, 7, 0, time.UTC)
		start, next := DayBounds(moment, time.UTC)

		assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("LocalDateDiffersFromUTCDate", func(t *testing.T) {
		istanbul, err := time.LoadLocation("Europe/Istanbul")
		require.NoError(t, err)

		// 22:30 UTC is already the next calendar day in Istanbul (UTC+3)
		moment := time.Date(2024, time.March, 15, 22, 30, 0, 0, time.UTC)
		start, next := DayBounds(moment, istanbul)

		assert.Equal(t, 16, start.In(istanbul).Day())
		assert.Equal(t, 17, next.In(istanbul).Day())
		assert.Equal(t, 24*time.Hour, next.Sub(start))
	})

	t.Run("HalfOpenInterval", func(t *testing.T) {
		moment := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
		start, next := DayBounds(moment, time.UTC)

		assert.False(t, moment.Before(start))
		assert.True(t, moment.Before(next))
	})
}
