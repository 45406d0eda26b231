package lists

import "time"

// SetClock replaces the clock used to stamp documents and returns a function restoring it.
func SetClock(now func() time.Time) (restore func()) {
	previous := timeNow
	timeNow = now
	return func() {
		timeNow = previous
	}
}
