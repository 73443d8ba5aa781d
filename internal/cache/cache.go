package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

const (
	facilityListKey = "facilities:approved"
	facilityListTTL = 5 * time.Minute

	otpTTL = 10 * time.Minute
)

type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{Client: client}
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

/*
* approved facility listing
 */

func (r *RedisCache) SetFacilityList(ctx context.Context, value any) error {
	return r.Set(ctx, facilityListKey, value, facilityListTTL)
}

func (r *RedisCache) GetFacilityList(ctx context.Context, dest any) error {
	return r.Get(ctx, facilityListKey, dest)
}

// InvalidateFacilityList drops the cached public listing after any
// write that changes what the public may see.
func (r *RedisCache) InvalidateFacilityList(ctx context.Context) error {
	return r.Client.Del(ctx, facilityListKey).Err()
}

/*
* one-time verification codes
 */

func makeOTPKey(userID uint) string {
	return fmt.Sprintf("otp:%d", userID)
}

func (r *RedisCache) SetOTP(ctx context.Context, userID uint, code string) error {
	return r.Client.Set(ctx, makeOTPKey(userID), code, otpTTL).Err()
}

func (r *RedisCache) GetOTP(ctx context.Context, userID uint) (string, error) {
	code, err := r.Client.Get(ctx, makeOTPKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrMiss
		}
		return "", err
	}
	return code, nil
}

func (r *RedisCache) DeleteOTP(ctx context.Context, userID uint) error {
	return r.Client.Del(ctx, makeOTPKey(userID)).Err()
}
