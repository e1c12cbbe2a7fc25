package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisitTimes(t *testing.T) {
	start, end, msg := parseVisitTimes("2026-09-01T14:00:00Z", "2026-09-01T15:00:00Z")

	require.Empty(t, msg)
	assert.Equal(t, time.Date(2026, time.September, 1, 14, 0, 0, 0, time.UTC), start)
	assert.True(t, end.After(start))
}

func TestParseVisitTimes_Rejects(t *testing.T) {
	_, _, msg := parseVisitTimes("not-a-time", "2026-09-01T15:00:00Z")
	assert.NotEmpty(t, msg)

	_, _, msg = parseVisitTimes("2026-09-01T14:00:00Z", "nope")
	assert.NotEmpty(t, msg)

	// end must be strictly after start
	_, _, msg = parseVisitTimes("2026-09-01T14:00:00Z", "2026-09-01T14:00:00Z")
	assert.NotEmpty(t, msg)
}

func TestParseOpenClosed(t *testing.T) {
	closed, ok := parseOpenClosed("")
	assert.True(t, ok)
	assert.False(t, closed, "empty flag means an open visit")

	closed, ok = parseOpenClosed("OPEN")
	assert.True(t, ok)
	assert.False(t, closed)

	closed, ok = parseOpenClosed("CLOSED")
	assert.True(t, ok)
	assert.True(t, closed)

	_, ok = parseOpenClosed("closed")
	assert.False(t, ok)
}

func TestParseIssueDate(t *testing.T) {
	d, err := parseIssueDate("2026-04-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC), d)

	_, err = parseIssueDate("09/04/2026")
	assert.Error(t, err)

	// empty defaults to today's date at midnight
	d, err = parseIssueDate("")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Hour())
	assert.WithinDuration(t, time.Now().UTC(), d, 25*time.Hour)
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2026, time.June, 5, 23, 59, 58, 7, time.UTC)
	assert.Equal(t, time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC), dateOf(ts))
}
