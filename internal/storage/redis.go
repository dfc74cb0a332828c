package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"careerai/internal/config"
	"careerai/internal/constants"
)

// usageKeyTTL keeps daily counters around slightly longer than a day so a
// midnight rollover never resurrects yesterday's count.
const usageKeyTTL = 26 * time.Hour

// md5SetTTL bounds the upload dedupe set.
const md5SetTTL = 30 * 24 * time.Hour

// Redis wraps the counters and dedupe set.
type Redis struct {
	client *redis.Client
}

// NewRedis connects and pings.
func NewRedis(ctx context.Context, cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client}, nil
}

// IncrUsage bumps and returns the user's analysis count for today. The first
// increment of a day sets the expiry.
func (r *Redis) IncrUsage(ctx context.Context, userID string) (int64, error) {
	key := constants.UsageKey(userID, time.Now().Format("2006-01-02"))

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr usage: %w", err)
	}
	if count == 1 {
		r.client.Expire(ctx, key, usageKeyTTL)
	}
	return count, nil
}

// GetUsage returns the user's analysis count for today.
func (r *Redis) GetUsage(ctx context.Context, userID string) (int64, error) {
	key := constants.UsageKey(userID, time.Now().Format("2006-01-02"))
	count, err := r.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

// CheckMD5Exists reports whether a raw-file MD5 was seen before.
func (r *Redis) CheckMD5Exists(ctx context.Context, md5sum string) (bool, error) {
	return r.client.SIsMember(ctx, constants.UploadedMD5SetKey, md5sum).Result()
}

// AddMD5 records a raw-file MD5 in the dedupe set.
func (r *Redis) AddMD5(ctx context.Context, md5sum string) error {
	if err := r.client.SAdd(ctx, constants.UploadedMD5SetKey, md5sum).Err(); err != nil {
		return fmt.Errorf("add md5: %w", err)
	}
	r.client.Expire(ctx, constants.UploadedMD5SetKey, md5SetTTL)
	return nil
}

// Close shuts the client down.
func (r *Redis) Close() error {
	return r.client.Close()
}
