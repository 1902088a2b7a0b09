package appointment

import (
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// WorksOn reports whether a comma separated weekday list ("1,2,3", Sunday = 0)
// contains day. An empty list means every day.
func WorksOn(workDays string, day time.Weekday) bool {
	if strings.TrimSpace(workDays) == "" {
		return true
	}
	for _, p := range strings.Split(workDays, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err == nil && time.Weekday(n) == day {
			return true
		}
	}
	return false
}

// WorkWindow returns the barber's working interval in minutes on date,
// falling back to the barbershop hours. ok is false on days off.
func WorkWindow(
	shop *models.Barbershop,
	barber *models.Barber,
	date time.Time,
) (start, end int, ok bool) {

	days := barber.WorkDays
	if days == "" {
		days = shop.WorkDays
	}
	if !WorksOn(days, date.Weekday()) {
		return 0, 0, false
	}

	from := firstNonEmpty(barber.WorkStartTime, shop.OpeningTime, models.DefaultOpeningTime)
	to := firstNonEmpty(barber.WorkEndTime, shop.ClosingTime, models.DefaultClosingTime)

	s, err := ParseClock(from)
	if err != nil {
		return 0, 0, false
	}
	e, err := ParseClock(to)
	if err != nil || e <= s {
		return 0, 0, false
	}
	return s, e, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
