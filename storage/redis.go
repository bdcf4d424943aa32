package storage

import (
	"log"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

// InitializeRedis connects the refresh-token allowlist store.
func InitializeRedis(addr string) {
	if addr == "" {
		addr = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})

	log.Println("Redis initialized with address:", addr)
}
