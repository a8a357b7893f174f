package bot

import (
	"sync"
	"time"
)

// RateLimiter paces outgoing Telegram API calls so the bot stays under
// the platform's per-second send limit.
type RateLimiter struct {
	mu            sync.Mutex
	nextAllowedAt time.Time
	interval      time.Duration
}

func NewRateLimiter(sendsPerSecond int) *RateLimiter {
	if sendsPerSecond <= 0 {
		sendsPerSecond = 1
	}
	return &RateLimiter{interval: time.Second / time.Duration(sendsPerSecond)}
}

func (r *RateLimiter) WaitTurn() {
	r.mu.Lock()
	now := time.Now()
	scheduled := now
	if r.nextAllowedAt.After(now) {
		scheduled = r.nextAllowedAt
	}
	r.nextAllowedAt = scheduled.Add(r.interval)
	r.mu.Unlock()

	if sleep := time.Until(scheduled); sleep > 0 {
		time.Sleep(sleep)
	}
}
