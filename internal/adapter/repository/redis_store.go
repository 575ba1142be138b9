package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-studio/internal/storage"
	apperrors "resume-studio/pkg/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStore keeps one hash per scope: field = storage key.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &RedisStore{client: client, logger: logger}, nil
}

func scopeKey(scope string) string {
	return "resume:scope:" + scope
}

func (r *RedisStore) Get(ctx context.Context, scope, key string) (string, error) {
	value, err := r.client.HGet(ctx, scopeKey(scope), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Redis get failed", zap.String("scope", scope), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, scope, key, value string) error {
	if err := r.client.HSet(ctx, scopeKey(scope), key, value).Err(); err != nil {
		r.logger.Error("Redis set failed", zap.String("scope", scope), zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Remove(ctx context.Context, scope, key string) error {
	if err := r.client.HDel(ctx, scopeKey(scope), key).Err(); err != nil {
		r.logger.Error("Redis delete failed", zap.String("scope", scope), zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis remove %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
