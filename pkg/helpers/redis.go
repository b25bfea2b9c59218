package helpers

import (
	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// KeyVerifyToken is the Redis key holding a pending email-verification token.
func KeyVerifyToken(token string) string {
	return "verify:token:" + token
}
