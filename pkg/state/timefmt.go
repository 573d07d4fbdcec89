package state

import (
	"time"

	"github.com/dustin/go-humanize"
)

// RelativeAge formats how long ago t was, relative to now ("3 weeks ago").
// A zero t yields "unknown".
func RelativeAge(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	if t.After(now) {
		t = now
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
