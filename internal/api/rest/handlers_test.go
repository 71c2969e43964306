package rest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDateHonorsTimezone(t *testing.T) {
	// UTC+14 and UTC-12 are 26 hours apart, so their calendar dates
	// always differ. If localDate fell back to the host clock both
	// handlers would return the same date.
	east, err := time.LoadLocation("Pacific/Kiritimati")
	require.NoError(t, err)
	west, err := time.LoadLocation("Etc/GMT+12")
	require.NoError(t, err)

	hEast := &Handler{location: east}
	hWest := &Handler{location: west}

	assert.NotEqual(t, hEast.localDate(0), hWest.localDate(0))
	assert.Equal(t, time.Now().In(east).Format("2006-01-02"), hEast.localDate(0))
}

func TestLocalDateYesterdayOffset(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	h := &Handler{location: loc}

	today, err := time.Parse("2006-01-02", h.localDate(0))
	require.NoError(t, err)
	yesterday, err := time.Parse("2006-01-02", h.localDate(-1))
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, today.Sub(yesterday))
}
