package domain

import "github.com/jonboulle/clockwork"

// clock is the package-level time source for synthetic dates. Tests freeze it
// via SetClock so last_update/last_audit assertions are exact.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
