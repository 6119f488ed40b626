package timesheet

import (
	"slices"
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

// Punches whose local minute falls in the same bucket are one physical event.
const dedupBucketMinutes = 5

type minuteWindow struct {
	from int
	to   int // inclusive
}

func (w minuteWindow) contains(m int) bool {
	return m >= w.from && m <= w.to
}

// Day-shift acceptance windows, in local minutes.
var (
	entryWindow    = minuteWindow{from: 5 * 60, to: 9*60 + 30}
	lunchOutWindow = minuteWindow{from: 10 * 60, to: 14 * 60}
	lunchInWindow  = minuteWindow{from: 11 * 60, to: 15 * 60}
	exitWindow     = minuteWindow{from: 16 * 60, to: timesheet.MinutesPerDay - 1}
)

// Night-shift hour windows.
const (
	nightEntryFromHour = 18
	nightEntryToHour   = 23
	nightExitFromHour  = 0
	nightExitToHour    = 12
)

// Classify assigns the day's punches to entry, lunch-out, lunch-in and exit.
// Absence markers and unparseable timestamps are ignored. Punch-count anomalies
// never fail; they show up later as observations.
func (c *Calculator) Classify(punches []timesheet.RawPunch, isNightShift bool) timesheet.ClassifiedDay {
	times := c.dedupedPunchTimes(punches)
	if isNightShift {
		return c.classifyNight(times)
	}
	return c.classifyDay(times)
}

// dedupedPunchTimes sorts real punches and keeps the first one of every bucket.
func (c *Calculator) dedupedPunchTimes(punches []timesheet.RawPunch) []time.Time {
	times := make([]time.Time, 0, len(punches))
	for _, p := range punches {
		if p.MarkedAbsent || p.Timestamp.IsZero() {
			continue
		}
		times = append(times, p.Timestamp)
	}
	slices.SortStableFunc(times, func(a, b time.Time) int {
		return a.Compare(b)
	})

	seen := make(map[int]struct{}, len(times))
	out := times[:0]
	for _, t := range times {
		bucket := c.MinutesSinceMidnight(t) / dedupBucketMinutes
		if _, dup := seen[bucket]; dup {
			continue
		}
		seen[bucket] = struct{}{}
		out = append(out, t)
	}
	return out
}

// classifyDay makes a single left-to-right pass; each punch claims the first
// empty slot whose window (and prerequisite slots) it satisfies. Slots still
// empty afterwards fall back to the punch at the same position.
func (c *Calculator) classifyDay(times []time.Time) timesheet.ClassifiedDay {
	var day timesheet.ClassifiedDay

	for _, t := range times {
		m := c.MinutesSinceMidnight(t)
		switch {
		case day.Entry == nil && entryWindow.contains(m):
			day.Entry = timePtr(t)
		case day.LunchOut == nil && lunchOutWindow.contains(m):
			day.LunchOut = timePtr(t)
		case day.LunchIn == nil && day.LunchOut != nil && lunchInWindow.contains(m):
			day.LunchIn = timePtr(t)
		case day.Exit == nil && day.Entry != nil && day.LunchIn != nil && exitWindow.contains(m):
			day.Exit = timePtr(t)
		}
	}

	if day.Entry == nil && len(times) > 0 {
		day.Entry = timePtr(times[0])
	}
	if day.LunchOut == nil && len(times) > 1 {
		day.LunchOut = timePtr(times[1])
	}
	if day.LunchIn == nil && len(times) > 2 {
		day.LunchIn = timePtr(times[2])
	}
	if day.Exit == nil && len(times) > 3 {
		day.Exit = timePtr(times[3])
	}

	return day
}

// classifyNight only fills entry and exit. Fallbacks never reuse the punch
// already taken by the other slot.
func (c *Calculator) classifyNight(times []time.Time) timesheet.ClassifiedDay {
	var day timesheet.ClassifiedDay
	if len(times) == 0 {
		return day
	}

	entryIdx := -1
	for i, t := range times {
		h := t.In(c.loc).Hour()
		if h >= nightEntryFromHour && h <= nightEntryToHour {
			entryIdx = i
			break
		}
	}

	exitIdx := -1
	for i := entryIdx + 1; i < len(times); i++ {
		h := times[i].In(c.loc).Hour()
		if h >= nightExitFromHour && h <= nightExitToHour {
			exitIdx = i
			break
		}
	}

	if entryIdx < 0 && exitIdx != 0 {
		entryIdx = 0
	}
	if exitIdx < 0 && len(times)-1 != entryIdx {
		exitIdx = len(times) - 1
	}

	if entryIdx >= 0 {
		day.Entry = timePtr(times[entryIdx])
	}
	if exitIdx >= 0 {
		day.Exit = timePtr(times[exitIdx])
	}
	return day
}

func timePtr(t time.Time) *time.Time {
	return &t
}
