package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const authTTL = 15 * time.Minute

// Cache is a thin wrapper over go-redis. A nil *Cache, or one whose
// connection failed, turns every call into a miss so callers degrade to
// reading the spreadsheet.
type Cache struct {
	client *redis.Client
}

// Connect dials Redis and pings it. On failure the client is closed and the
// error returned; callers are expected to carry on without a cache.
func Connect(addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Cache{client: client}, nil
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

func hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// authKeyPrefix groups every cached login of one user so a password change
// can drop them all without knowing the old password.
func authKeyPrefix(email string) string {
	return "auth:" + hash(normalizeEmail(email))[:16] + ":"
}

// authKey creates a hash of email+password for the cache key
func authKey(email, password string) string {
	return authKeyPrefix(email) + hash(normalizeEmail(email) + ":" + password)[:32]
}

// GetCachedAuth reports whether this email/password pair verified recently.
func (c *Cache) GetCachedAuth(ctx context.Context, email, password string) bool {
	if !c.enabled() {
		return false
	}
	n, err := c.client.Exists(ctx, authKey(email, password)).Result()
	return err == nil && n > 0
}

// CacheAuth remembers a successful verification for 15 minutes
func (c *Cache) CacheAuth(ctx context.Context, email, password string) {
	if !c.enabled() {
		return
	}
	c.client.Set(ctx, authKey(email, password), "1", authTTL)
}

// InvalidateAuth removes every cached login for email (on password change)
func (c *Cache) InvalidateAuth(ctx context.Context, email string) {
	c.InvalidatePattern(ctx, authKeyPrefix(email)+"*")
}

// InvalidatePattern removes all keys matching a glob pattern
func (c *Cache) InvalidatePattern(ctx context.Context, pattern string) {
	if !c.enabled() {
		return
	}
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		c.client.Del(ctx, keys...)
	}
}

// IsHealthy returns true if Redis connection is working
func (c *Cache) IsHealthy(ctx context.Context) bool {
	if !c.enabled() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err() == nil
}

func (c *Cache) Close() error {
	if !c.enabled() {
		return nil
	}
	return c.client.Close()
}
