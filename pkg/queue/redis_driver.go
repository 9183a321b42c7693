package queue

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kipngetich-lab/TukoShop-App/config"
)

const redisQueueKey = "tukoshop:queue:jobs"

// RedisDriver is a Redis list-backed queue driver. Jobs survive process
// restarts, which matters for reconciliation work queued just before a crash.
type RedisDriver struct {
	client *redis.Client
}

// NewRedisDriver connects to Redis using the configured address/password.
func NewRedisDriver() *RedisDriver {
	return &RedisDriver{
		client: redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
		}),
	}
}

func (d *RedisDriver) Push(payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.LPush(ctx, redisQueueKey, payload).Err()
}

func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	// Short block so worker shutdown via ctx stays responsive.
	res, err := d.client.BRPop(ctx, 2*time.Second, redisQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}
