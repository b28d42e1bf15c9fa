package otpstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/docucare-api/internal/config"
	"github.com/docucare-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "login_otp:"

// expiryGrace keeps a record in Redis past its logical expiry so a late
// verification attempt reports "expired" rather than "not found".
const expiryGrace = time.Minute

// Redis is an OTP store backed by a Redis instance with TTL eviction.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(cfg *config.Config) *Redis {
	return &Redis{rdb: redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})}
}

func (r *Redis) Put(ctx context.Context, rec *domain.LoginOTP) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	ttl := time.Until(rec.ExpiresAt) + expiryGrace
	if ttl <= 0 {
		ttl = expiryGrace
	}
	return r.rdb.Set(ctx, keyPrefix+rec.Key, b, ttl).Err()
}

func (r *Redis) Get(ctx context.Context, key string) (*domain.LoginOTP, error) {
	b, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("otp record for key: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var rec domain.LoginOTP
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal otp record: %w", err)
	}
	return &rec, nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, keyPrefix+key).Err()
}
