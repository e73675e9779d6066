package usecase

import "time"

// nowFunc is swapped out in tests for deterministic timestamps.
type nowFunc func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
