package ratelimit

import (
	"context"
	"fmt"
	"time"

	"winetour-be/internal/pkg/apperror"

	"github.com/redis/go-redis/v9"
)

// OTPLimiter throttles verification and reset emails per address so a leaked
// endpoint can't be used to spam a mailbox. Counters live in Redis with a
// rolling window; when Redis is down we fail open rather than block signups.
type OTPLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewOTPLimiter(rdb *redis.Client, limit int, window time.Duration) *OTPLimiter {
	return &OTPLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
	}
}

func (l *OTPLimiter) Allow(ctx context.Context, email string) error {
	if l.rdb == nil {
		return nil
	}

	key := fmt.Sprintf("otp:%s", email)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return nil // fail open
	}
	if count == 1 {
		l.rdb.Expire(ctx, key, l.window)
	}
	if count > int64(l.limit) {
		return apperror.Validation("too many verification emails requested, try again later")
	}
	return nil
}
