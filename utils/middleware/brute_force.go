package middleware

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/utils/kv"
	"github.com/sahilchouksey/academia-api/utils/response"
)

// Failed login attempts are counted per client IP inside this window
const attemptWindow = 15 * time.Minute

// BruteForceProtection locks out clients after repeated failed logins. A nil
// *BruteForceProtection, or a Redis outage, never blocks a request.
type BruteForceProtection struct {
	store *kv.RedisStore
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(store *kv.RedisStore) *BruteForceProtection {
	if store == nil {
		return nil
	}
	return &BruteForceProtection{store: store}
}

func attemptKey(ip string) string { return fmt.Sprintf("brute_force:attempts:%s", ip) }
func lockKey(ip string) string    { return fmt.Sprintf("brute_force:lock:%s", ip) }

// LockoutFor returns how long a client is locked out after the given number of failures
func LockoutFor(attempts int64) time.Duration {
	switch {
	case attempts >= 25:
		return 24 * time.Hour
	case attempts >= 10:
		return time.Hour
	case attempts >= 5:
		return 2 * time.Minute
	default:
		return 0
	}
}

// Check middleware rejects requests from a locked out IP
func (b *BruteForceProtection) Check() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if b == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		locked, err := b.store.Exists(ctx, lockKey(c.IP()))
		if err != nil {
			log.Printf("brute force check skipped: %v", err)
			return c.Next()
		}

		if locked {
			ttl, _ := b.store.TTL(ctx, lockKey(c.IP()))
			retryAfter := int(ttl.Seconds())
			if retryAfter <= 0 {
				retryAfter = 60
			}

			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt counts a failed login and applies progressive lockouts
func (b *BruteForceProtection) RecordFailedAttempt(ctx context.Context, ip, email string) {
	if b == nil {
		return
	}

	attempts, err := b.store.IncrementWithin(ctx, attemptKey(ip), attemptWindow)
	if err != nil {
		log.Printf("failed to record login attempt: %v", err)
		return
	}

	lock := LockoutFor(attempts)
	if lock == 0 {
		return
	}

	log.Printf("login locked for %s after %d failures (last email %s)", ip, attempts, strings.ToLower(email))
	if err := b.store.Set(ctx, lockKey(ip), "locked", lock); err != nil {
		log.Printf("failed to lock client: %v", err)
	}
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(ctx context.Context, ip string) {
	if b == nil {
		return
	}
	if err := b.store.Delete(ctx, attemptKey(ip), lockKey(ip)); err != nil {
		log.Printf("failed to clear login attempts: %v", err)
	}
}
