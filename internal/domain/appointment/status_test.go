package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, st)

	_, err = ParseStatus("scheduled")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusNoShow, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusCompleted, false},
		{StatusConfirmed, StatusConfirmed, true},
		{StatusCompleted, StatusCompleted, true},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusNoShow.Terminal())
}

func TestStamp(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusPending)}

	assert.Equal(t, "confirmed_at", Stamp(ap, StatusConfirmed, now))
	assert.Equal(t, "confirmed", ap.Status)
	require.NotNil(t, ap.ConfirmedAt)
	assert.True(t, ap.ConfirmedAt.Equal(now))

	later := now.Add(time.Hour)
	Stamp(ap, StatusConfirmed, later)
	assert.True(t, ap.ConfirmedAt.Equal(later), "repeating a status re-stamps it")

	assert.Equal(t, "completed_at", Stamp(ap, StatusCompleted, later))
	assert.Equal(t, "", Stamp(ap, StatusPending, later))
}

func TestFirstCompletion(t *testing.T) {
	assert.True(t, FirstCompletion(StatusConfirmed, StatusCompleted))
	assert.False(t, FirstCompletion(StatusCompleted, StatusCompleted))
	assert.False(t, FirstCompletion(StatusPending, StatusCancelled))
}
