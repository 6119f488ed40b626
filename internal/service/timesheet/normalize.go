package timesheet

import "time"

// MinutesSinceMidnight returns the wall-clock minute of t in the business timezone.
func (c *Calculator) MinutesSinceMidnight(t time.Time) int {
	local := t.In(c.loc)
	return local.Hour()*60 + local.Minute()
}

// StartOfDay returns local midnight of the calendar day containing t.
func (c *Calculator) StartOfDay(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}
