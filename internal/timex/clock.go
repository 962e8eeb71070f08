package timex

import "time"

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// UTC is the production clock.
func UTC() time.Time {
	return time.Now().UTC()
}

// Fixed returns a clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
