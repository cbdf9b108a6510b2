package streak

import (
	"sort"
	"time"
)

// Result holds the consecutive-day completion streaks for a user.
// CurrentStreak is 0 unless the most recent completion was today or
// yesterday. LongestStreak is the true historical maximum run length,
// which may exceed the current streak after a gap.
type Result struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// Calculate derives streaks from the set of calendar days on which the
// user completed at least one task. The input may be unsorted and may
// contain duplicates; all dates are compared as UTC calendar days.
func Calculate(dates []time.Time, now time.Time) Result {
	days := distinctDays(dates)
	if len(days) == 0 {
		return Result{}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	current := 0
	last := days[len(days)-1]
	if daysBetween(last, toDay(now)) <= 1 {
		current = 1
		for i := len(days) - 2; i >= 0; i-- {
			if daysBetween(days[i], days[i+1]) != 1 {
				break
			}
			current++
		}
	}

	return Result{CurrentStreak: current, LongestStreak: longest}
}

// ParseDay parses a stored task date. Tasks carry ISO day strings but
// older records may hold a full RFC 3339 timestamp.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return toDay(t), true
	}
	return time.Time{}, false
}

func distinctDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	var days []time.Time
	for _, d := range dates {
		day := toDay(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	return days
}

func toDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
