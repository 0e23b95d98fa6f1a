package dateutil

import "time"

// DayLayout is the bucket key used by daily rollups.
const DayLayout = "2006-01-02"

func Day(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

func Today() string {
	return Day(time.Now())
}

func Yesterday() string {
	return Day(time.Now().AddDate(0, 0, -1))
}

// LastDays returns the bucket keys for the n days ending today, oldest
// first.
func LastDays(n int) []string {
	days := make([]string, 0, n)
	now := time.Now()
	for i := n - 1; i >= 0; i-- {
		days = append(days, Day(now.AddDate(0, 0, -i)))
	}

	return days
}
