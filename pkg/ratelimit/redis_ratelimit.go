package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlidingWindow is the distributed variant of SlidingWindow, backed by a
// Redis sorted set per key. The window logic runs in a single Lua script so
// check-and-record is atomic across processes.
type RedisSlidingWindow struct {
	client    *redis.Client
	keyPrefix string
	max       int
	window    time.Duration
}

// NewRedisSlidingWindow creates a Redis-backed limiter from a redis:// URL.
func NewRedisSlidingWindow(redisURL string, max int, window time.Duration) (*RedisSlidingWindow, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = 20 * time.Second
	}

	return &RedisSlidingWindow{
		client:    redis.NewClient(opts),
		keyPrefix: "ratelimit:",
		max:       max,
		window:    window,
	}, nil
}

// admitScript prunes entries older than the window, denies when the bucket is
// full (returning the oldest remaining timestamp for the retry hint) and
// records the request otherwise. Timestamps are in milliseconds.
var admitScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local max = tonumber(ARGV[3])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

	local count = redis.call('ZCARD', key)
	if count >= max then
		local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
		return {0, tonumber(oldest[2])}
	end

	redis.call('ZADD', key, now, tostring(now) .. '-' .. tostring(math.random(1000000)))
	redis.call('PEXPIRE', key, window * 2)
	return {1, 0}
`)

// Admit implements the same contract as SlidingWindow.Admit.
func (l *RedisSlidingWindow) Admit(ctx context.Context, key string, now time.Time) (bool, int, error) {
	nowMs := now.UnixMilli()
	windowMs := l.window.Milliseconds()

	result, err := admitScript.Run(ctx, l.client, []string{l.keyPrefix + key}, nowMs, windowMs, l.max).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis script execution failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return false, 0, fmt.Errorf("invalid script result")
	}

	allowed, _ := values[0].(int64)
	if allowed == 1 {
		return true, 0, nil
	}

	oldest, _ := values[1].(int64)
	waitMs := oldest + windowMs - nowMs
	secs := int((waitMs + 999) / 1000)
	if secs < 0 {
		secs = 0
	}

	return false, secs, nil
}

// Reset drops the bucket for a key.
func (l *RedisSlidingWindow) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection.
func (l *RedisSlidingWindow) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (l *RedisSlidingWindow) Close() error {
	return l.client.Close()
}
