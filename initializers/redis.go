package initializers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis backs the short-lived caches (order status counts, category list).
// The API works without it: cache reads fall back to the database when the
// client is nil.
var Redis *redis.Client

func ConnectToRedis() {
	if GetEnv("REDIS_ENABLED", "true") != "true" {
		log.Println("Redis disabled, caching off")
		return
	}

	db, _ := strconv.Atoi(GetEnv("REDIS_DB", "0"))
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", GetEnv("REDIS_HOST", "localhost"), GetEnv("REDIS_PORT", "6379")),
		Password:     GetEnv("REDIS_PASSWORD", ""),
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("Redis unavailable, caching off: %v", err)
		return
	}

	Redis = rdb
	log.Println("Redis connected.")
}
