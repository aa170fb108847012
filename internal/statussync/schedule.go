package statussync

import "time"

// pollOffset keeps the console from hitting the provider exactly on the
// quarter-hour, when every other consumer of the API fires too.
const pollOffset = 15 * time.Second

// NextQuarterHour returns the next quarter-hour boundary after now, plus a
// small fixed offset. Sync runs align to wall-clock quarters so report
// caching works across restarts.
func NextQuarterHour(now time.Time) time.Time {
	next := (now.Minute()/15 + 1) * 15
	base := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	return base.Add(time.Duration(next) * time.Minute).Add(pollOffset)
}
