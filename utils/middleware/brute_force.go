package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/sahilchouksey/academic-portfolio/utils/cache"
	"github.com/sirupsen/logrus"
)

// BruteForceProtection locks out client IPs that keep failing to log in. It
// complements the per-account lockout and is only active when Redis is
// configured.
type BruteForceProtection struct {
	redisCache *cache.RedisCache
	logger     *logrus.Logger
}

// NewBruteForceProtection creates a new brute force protection instance. A
// nil cache disables the protection.
func NewBruteForceProtection(redisCache *cache.RedisCache, logger *logrus.Logger) *BruteForceProtection {
	return &BruteForceProtection{
		redisCache: redisCache,
		logger:     logger,
	}
}

func attemptKey(ip string) string { return fmt.Sprintf("brute_force:attempts:%s", ip) }
func lockKey(ip string) string    { return fmt.Sprintf("brute_force:lock:%s", ip) }

// Check middleware rejects requests from a locked out IP
func (b *BruteForceProtection) Check() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if b.redisCache == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := lockKey(c.IP())

		locked, err := b.redisCache.Exists(ctx, key)
		if err != nil {
			// Redis trouble must not block legitimate logins
			b.logger.WithError(err).Warn("brute force check skipped")
			return c.Next()
		}

		if locked {
			ttl, _ := b.redisCache.TTL(ctx, key)
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = 60
			}

			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return apperror.New(apperror.AccountLocked,
				fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt records a failed login attempt and applies progressive
// lockouts
func (b *BruteForceProtection) RecordFailedAttempt(ctx context.Context, ip string) {
	if b.redisCache == nil {
		return
	}

	attempts, err := b.redisCache.Increment(ctx, attemptKey(ip))
	if err != nil {
		b.logger.WithError(err).Warn("brute force counter not updated")
		return
	}

	// 15 minute window
	if attempts == 1 {
		_ = b.redisCache.Expire(ctx, attemptKey(ip), 15*time.Minute)
	}

	var lockDuration time.Duration
	switch {
	case attempts >= 25:
		lockDuration = 24 * time.Hour
	case attempts >= 10:
		lockDuration = time.Hour
	case attempts >= 5:
		lockDuration = 2 * time.Minute
	default:
		return
	}

	if err := b.redisCache.Set(ctx, lockKey(ip), "locked", lockDuration); err != nil {
		b.logger.WithError(err).Warn("brute force lock not stored")
		return
	}
	b.logger.WithFields(logrus.Fields{"ip": ip, "attempts": attempts, "lock": lockDuration}).Warn("client ip locked out")
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(ctx context.Context, ip string) {
	if b.redisCache == nil {
		return
	}
	_ = b.redisCache.Delete(ctx, attemptKey(ip), lockKey(ip))
}
