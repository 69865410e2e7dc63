package queue

import "time"

const maxBackoff = 15 * time.Minute

// NextBackoff returns the delay before the given (1-based) retry attempt:
// base doubled per attempt, capped at maxBackoff.
func NextBackoff(attempt int, base time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
