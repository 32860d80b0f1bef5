package dal

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"droppoint-partner-api/internal/config"
)

// RedisClient backs portal sessions and the ledger append guard. It stays
// nil when InitRedis was never called (tests); callers tolerate that.
var RedisClient *redis.Client
var RedisCtx = context.Background()

func InitRedis() {
	c := config.C.Redis
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  2 * time.Second,
		MinIdleConns: 2,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis ping failed: %v", err)
	}
}
