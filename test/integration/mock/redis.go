package mock

import (
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisClient *redis.Client

// NewRedis boots an embedded redis once per test binary and returns a client
// connected to it.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}

		redisClient = redis.NewClient(&redis.Options{
			Addr: server.Addr(),
		})
	})

	return redisClient
}
