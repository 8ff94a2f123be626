package notification

import (
	"math"
	"math/rand"
	"time"
)

// Strategy computes the delay before retry attempt n (1-indexed). Attempt 1
// is the first retry after the initial failure. Implementations are
// stateless and safe for concurrent use.
type Strategy interface {
	Delay(attempt int) time.Duration
}

// ConstantBackoff waits the same interval between every attempt. Mostly
// useful in tests, where jitter makes timing assertions impossible.
type ConstantBackoff struct {
	Interval time.Duration
}

func (c ConstantBackoff) Delay(_ int) time.Duration {
	return c.Interval
}

// ExponentialBackoff doubles the delay each attempt and applies full
// jitter: the actual delay is drawn uniformly from [0, min(Initial *
// 2^(attempt-1), Max)]. Jitter spreads retries out when a webhook outage
// fails many deliveries at once.
type ExponentialBackoff struct {
	Initial time.Duration
	Max     time.Duration
}

func (e ExponentialBackoff) Delay(attempt int) time.Duration {
	base := float64(e.Initial) * math.Pow(2, float64(attempt-1))
	if e.Max > 0 && base > float64(e.Max) {
		base = float64(e.Max)
	}
	return time.Duration(rand.Float64() * base)
}

// defaultStrategy matches the documented delivery contract: 500ms initial,
// capped at 30s.
func defaultStrategy() Strategy {
	return ExponentialBackoff{Initial: 500 * time.Millisecond, Max: 30 * time.Second}
}
