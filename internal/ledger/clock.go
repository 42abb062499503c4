package ledger

import "time"

// Clock supplies the wall-clock timestamps stamped onto history entries.
// Injected so tests can pin time; production uses SystemClock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
