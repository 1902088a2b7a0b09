package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
)

const minutesPerDay = 24 * 60

// ParseClock converts "HH:MM" into minutes since midnight. Only the zero
// padded form is accepted, since stored clock strings are compared as text.
func ParseClock(hm string) (int, error) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ComputeEndTime adds durationMin to start and returns the wall-clock end
// time together with how many days later it falls.
// ComputeEndTime("23:45", 30) returns ("00:15", 1).
func ComputeEndTime(start string, durationMin int) (string, int, error) {
	if durationMin <= 0 {
		return "", 0, httperr.ErrBusiness("invalid_duration")
	}

	m, err := ParseClock(start)
	if err != nil {
		return "", 0, err
	}

	total := m + durationMin
	return FormatClock(total), total / minutesPerDay, nil
}

// SameDayEndTime is ComputeEndTime for bookings, which must end on the day
// they start. An end exactly at midnight is treated as crossing it.
func SameDayEndTime(start string, durationMin int) (string, error) {
	end, dayOffset, err := ComputeEndTime(start, durationMin)
	if err != nil {
		return "", err
	}
	if dayOffset > 0 {
		return "", httperr.ErrBusiness("crosses_midnight")
	}
	return end, nil
}

// ParseDate validates an ISO yyyy-MM-dd date.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}
