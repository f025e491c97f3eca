package distance

import "time"

// graceDuration and maxDuration implement the §4.3 time-delta rule: equal
// lengths or within 10s grace map to MIN; 40s or more apart maps to MAX;
// linear in between.
const (
	graceDuration = 10 * time.Second
	maxDuration   = 30 * time.Second
)

// BetweenDurations computes the time-delta distance between two durations.
func BetweenDurations(lhs, rhs time.Duration) Distance {
	diff := lhs - rhs
	if diff < 0 {
		diff = -diff
	}
	diff -= graceDuration
	if diff < 0 {
		diff = 0
	}
	if diff > maxDuration {
		diff = maxDuration
	}
	return New(float64(diff) / float64(maxDuration))
}
