package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gymhub/internal/models"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// SessionCache keeps authentication key -> user lookups in Valkey/Redis so the
// auth gate does not hit Postgres on every protected request.
type SessionCache struct {
	client     *redis.Client
	ttl        time.Duration
	revokedTTL time.Duration
	prefix     string
}

// revokedMarker занимает ключ после Revoke, чтобы запоздавший Fill не вернул старую сессию
const revokedMarker = "revoked"

// NewSessionCache returns nil without error when no address is configured.
func NewSessionCache(ctx context.Context, cfg Config) (*SessionCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return NewSessionCacheWithClient(rdb, cfg.TTL), nil
}

func NewSessionCacheWithClient(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &SessionCache{client: client, ttl: ttl, revokedTTL: time.Minute, prefix: "session:"}
}

func (c *SessionCache) cacheKey(authKey string) string {
	return c.prefix + authKey
}

// Get returns (nil, nil) on a cache miss or for a revoked key.
func (c *SessionCache) Get(ctx context.Context, authKey string) (*models.User, error) {
	raw, err := c.client.Get(ctx, c.cacheKey(authKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	if string(raw) == revokedMarker {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("invalid cached user: %w", err)
	}
	return &user, nil
}

// Fill caches a user resolved from the database. It never overwrites an existing
// entry, so a key revoked while the lookup was in flight stays revoked.
func (c *SessionCache) Fill(ctx context.Context, authKey string, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := c.client.SetNX(ctx, c.cacheKey(authKey), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache write error: %w", err)
	}
	return nil
}

// Revoke replaces whatever is cached for the key with a short-lived marker.
func (c *SessionCache) Revoke(ctx context.Context, authKey string) error {
	if err := c.client.Set(ctx, c.cacheKey(authKey), revokedMarker, c.revokedTTL).Err(); err != nil {
		return fmt.Errorf("cache revoke error: %w", err)
	}
	return nil
}

func (c *SessionCache) Close() error {
	return c.client.Close()
}
