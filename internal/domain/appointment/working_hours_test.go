package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func TestWorksOn(t *testing.T) {
	assert.True(t, WorksOn("1,2,3,4,5,6", time.Monday))
	assert.False(t, WorksOn("1,2,3,4,5,6", time.Sunday))
	assert.True(t, WorksOn(" 0 , 6", time.Sunday))
	assert.True(t, WorksOn("", time.Sunday))
}

func TestWorkWindow(t *testing.T) {
	shop := &models.Barbershop{OpeningTime: "08:00", ClosingTime: "18:00", WorkDays: "1,2,3,4,5"}
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	start, end, ok := WorkWindow(shop, &models.Barber{}, monday)
	assert.True(t, ok)
	assert.Equal(t, 8*60, start)
	assert.Equal(t, 18*60, end)

	_, _, ok = WorkWindow(shop, &models.Barber{}, saturday)
	assert.False(t, ok, "falls back to the shop work days")

	barber := &models.Barber{WorkStartTime: "10:00", WorkEndTime: "14:00", WorkDays: "6"}
	start, end, ok = WorkWindow(shop, barber, saturday)
	assert.True(t, ok)
	assert.Equal(t, 10*60, start)
	assert.Equal(t, 14*60, end)

	broken := &models.Barber{WorkStartTime: "14:00", WorkEndTime: "10:00"}
	_, _, ok = WorkWindow(shop, broken, monday)
	assert.False(t, ok)
}
