package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Credential session cache. Keys are stored under a digest of the plaintext so
// the key itself never reaches Redis.

func sessionKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return "session:" + hex.EncodeToString(sum[:])
}

// CacheSession marks a validated credential for the given TTL.
func (c *Client) CacheSession(apiKey string, keyID uint, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, sessionKey(apiKey), keyID, ttl).Err()
}

// SessionKeyID returns the API key ID cached for a credential, or false when
// no session exists.
func (c *Client) SessionKeyID(apiKey string) (uint, bool, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, sessionKey(apiKey)).Uint64()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get session: %w", err)
	}
	return uint(val), true, nil
}

// ClearSession drops a cached credential, forcing re-validation against the
// stored key hashes.
func (c *Client) ClearSession(apiKey string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, sessionKey(apiKey)).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
