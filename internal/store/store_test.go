package store

import (
	"time"
)

// stepClock returns a clock that advances by step on every call, so tests can
// assert strict updatedAt ordering without sleeping.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}
