package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/facet-unt/departamentos-api/utils/cache"
	"github.com/facet-unt/departamentos-api/utils/response"
)

// BruteForceProtection locks out client IPs after repeated failed logins
type BruteForceProtection struct {
	store cache.Store
	log   *zap.Logger
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(store cache.Store, log *zap.Logger) *BruteForceProtection {
	if log == nil {
		log = zap.NewNop()
	}
	return &BruteForceProtection{
		store: store,
		log:   log,
	}
}

func attemptKey(ip string) string { return fmt.Sprintf("brute_force:attempts:%s", ip) }
func lockKey(ip string) string    { return fmt.Sprintf("brute_force:lock:%s", ip) }

// LockoutFor returns how long an IP is locked after attempts failures
func LockoutFor(attempts int64) time.Duration {
	switch {
	case attempts >= 25:
		return 24 * time.Hour
	case attempts >= 10:
		return time.Hour
	case attempts >= 5:
		return 2 * time.Minute
	}
	return 0
}

// CheckAndRecordAttempt middleware checks if IP is locked out
func (b *BruteForceProtection) CheckAndRecordAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		ctx := c.UserContext()

		locked, err := b.store.Exists(ctx, lockKey(ip))
		if err != nil {
			// Cache outages must not block logins
			b.log.Warn("brute force store unavailable", zap.Error(err))
			return c.Next()
		}

		if locked {
			ttl, _ := b.store.TTL(ctx, lockKey(ip))
			retryAfter := int(ttl.Seconds())
			if retryAfter <= 0 {
				retryAfter = 60
			}

			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Request was throttled. Expected available in %d seconds.", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt records a failed login attempt and applies progressive lockouts
func (b *BruteForceProtection) RecordFailedAttempt(ctx context.Context, ip, email string) error {
	attempts, err := b.store.Hit(ctx, attemptKey(ip), 15*time.Minute)
	if err != nil {
		b.log.Warn("failed to record login attempt", zap.String("ip", ip), zap.Error(err))
		return nil
	}

	lockDuration := LockoutFor(attempts)
	if lockDuration == 0 {
		return nil
	}

	b.log.Warn("login locked out",
		zap.String("ip", ip),
		zap.String("email", email),
		zap.Int64("attempts", attempts),
		zap.Duration("lock", lockDuration),
	)
	return b.store.Set(ctx, lockKey(ip), "locked", lockDuration)
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(ctx context.Context, ip string) error {
	return b.store.Delete(ctx, attemptKey(ip), lockKey(ip))
}
