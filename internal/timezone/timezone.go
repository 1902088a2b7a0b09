package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

const dateLayout = "2006-01-02"

// Today returns the current date of tz as yyyy-MM-dd.
func Today(tz string) string {
	return NowIn(tz).Format(dateLayout)
}

// MonthRange returns the first day of the month of t and the first day of
// the following month, both as yyyy-MM-dd.
func MonthRange(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.Format(dateLayout), first.AddDate(0, 1, 0).Format(dateLayout)
}
