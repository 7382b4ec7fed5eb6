package activity

import (
	"math"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// UpcomingWithinDays keeps the activities dated from today through today+days,
// earliest first. Dates are read in now's location and time of day is ignored.
// Activities whose date cannot be parsed are dropped.
func UpcomingWithinDays(activities []ActivityResponse, days int, now time.Time) []ActivityResponse {
	today := midnight(now)
	until := today.AddDate(0, 0, days)

	type dated struct {
		a ActivityResponse
		d time.Time
	}
	var keep []dated
	for _, a := range activities {
		d, err := time.ParseInLocation(dateLayout, a.Date, now.Location())
		if err != nil {
			continue
		}
		if d.Before(today) || d.After(until) {
			continue
		}
		keep = append(keep, dated{a: a, d: d})
	}

	sort.SliceStable(keep, func(i, j int) bool {
		return keep[i].d.Before(keep[j].d)
	})

	out := make([]ActivityResponse, len(keep))
	for i, k := range keep {
		out[i] = k.a
	}
	return out
}

// DaysUntil counts calendar days from now to date; 0 is today. ok is false
// when date is not a YYYY-MM-DD value.
func DaysUntil(date string, now time.Time) (int, bool) {
	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return 0, false
	}
	today := midnight(now)
	return int(math.Round(d.Sub(today).Hours() / 24)), true
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
