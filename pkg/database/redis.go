package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis connects to the Redis instance that backs OTP storage and
// live officer locations.
func ConnectRedis() *redis.Client {
	uri := os.Getenv("REDIS_URL")
	if uri == "" {
		uri = "redis://localhost:6379/0"
	}

	opt, err := redis.ParseURL(uri)
	if err != nil {
		log.Fatal("Invalid REDIS_URL. \n", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 5
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis. \n", err)
	}

	log.Println("Redis connection established")
	return client
}
