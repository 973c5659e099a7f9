package utils

import (
	"context"
	"log"
	"time"

	"joeyjob/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (rosters, availability).
	CacheClient *redis.Client
	// GuardClient is the dedicated client for submission idempotency guards.
	GuardClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitGuardCache initializes the Redis client for idempotency guards.
func InitGuardCache() {
	GuardClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisGuardDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := GuardClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Guard): %v", err)
	}
}

// GetGuardClient returns the Redis client for idempotency guards.
func GetGuardClient() *redis.Client {
	if GuardClient == nil {
		InitGuardCache()
	}
	return GuardClient
}

// InitRedis initializes all Redis clients up front.
func InitRedis() {
	InitCache()
	InitGuardCache()
}
