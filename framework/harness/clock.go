package harness

import "time"

// Clock supplies the current time for elapsed-time measurement. The engine
// only ever subtracts two readings taken within one process, so any
// monotonically nondecreasing source works; tests inject a fake.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
