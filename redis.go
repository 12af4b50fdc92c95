package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

const (
	listCacheTTL   = 60 * time.Second
	chartsCacheTTL = 5 * time.Minute
)

// initRedis initializes the Redis connection
func initRedis() error {
	redisURL := redisAddr()

	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", redisURL))
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	redisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	return nil
}

// userCacheKey builds a response cache key scoped to one owner so that
// invalidation on a write touches only that owner's entries
func userCacheKey(userID int, parts ...string) string {
	key := "cache:" + strconv.Itoa(userID)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// cacheGetJSON loads a cached response into dest; false on miss or when the
// cache is unavailable
func cacheGetJSON(ctx context.Context, key string, dest any) bool {
	if redisClient == nil {
		return false
	}
	cached, err := redisClient.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		return false
	}
	return true
}

// cacheSetJSON stores a response; failures are logged and otherwise ignored
func cacheSetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if redisClient == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := redisClient.SetEx(ctx, key, data, ttl).Err(); err != nil {
		slog.Debug("cache write failed", "key", key, "error", err)
	}
}

// invalidateUserCache drops every cached response belonging to one owner.
// Called after each of that owner's writes.
func invalidateUserCache(ctx context.Context, userID int) {
	if redisClient == nil {
		return
	}
	pattern := userCacheKey(userID) + ":*"
	iter := redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Debug("cache scan failed", "pattern", pattern, "error", err)
		return
	}
	if len(keys) > 0 {
		redisClient.Del(ctx, keys...)
	}
}
