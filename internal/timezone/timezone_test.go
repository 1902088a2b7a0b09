package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "America/Sao_Paulo", Location("").String())
	assert.Equal(t, "America/Sao_Paulo", Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Manaus"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Nowhere/City"))
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2024, 12, 17, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-12-01", from)
	assert.Equal(t, "2025-01-01", to)
}

func TestToday(t *testing.T) {
	assert.Len(t, Today("America/Sao_Paulo"), 10)
}
