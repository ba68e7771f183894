package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"staybook/internal/config"
	"staybook/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	holdKeyPrefix  = "hold"
	eventKeyPrefix = "payment_event"
)

// RedisPaymentStateRepository хранит холды и маркеры вебхуков в Redis.
type RedisPaymentStateRepository struct {
	client *redis.Client
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisPaymentStateRepository(client *redis.Client) *RedisPaymentStateRepository {
	return &RedisPaymentStateRepository{client: client}
}

func holdKey(unitID, reservationID int64) string {
	return fmt.Sprintf("%s:%d:%d", holdKeyPrefix, unitID, reservationID)
}

func eventKey(eventID string) string {
	return eventKeyPrefix + ":" + eventID
}

func (r *RedisPaymentStateRepository) PlaceHold(ctx context.Context, hold models.Hold, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("failed to marshal hold: %w", err)
	}
	if err := r.client.Set(ctx, holdKey(hold.UnitID, hold.ReservationID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set hold in redis: %w", err)
	}
	return nil
}

func (r *RedisPaymentStateRepository) ReleaseHolds(ctx context.Context, holds []models.Hold) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if len(holds) == 0 {
		return nil
	}
	keys := make([]string, 0, len(holds))
	for _, h := range holds {
		keys = append(keys, holdKey(h.UnitID, h.ReservationID))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete holds from redis: %w", err)
	}
	return nil
}

func (r *RedisPaymentStateRepository) ActiveHolds(ctx context.Context, unitID int64) ([]models.Hold, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	pattern := fmt.Sprintf("%s:%d:*", holdKeyPrefix, unitID)

	var holds []models.Hold
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		val, err := r.client.Get(ctx, iter.Val()).Result()
		if errors.Is(err, redis.Nil) {
			// истек между SCAN и GET
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get hold from redis: %w", err)
		}
		var h models.Hold
		if err := json.Unmarshal([]byte(val), &h); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hold: %w", err)
		}
		holds = append(holds, h)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan holds: %w", err)
	}
	return holds, nil
}

func (r *RedisPaymentStateRepository) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	n, err := r.client.Exists(ctx, eventKey(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check event marker: %w", err)
	}
	return n > 0, nil
}

func (r *RedisPaymentStateRepository) MarkEventProcessed(ctx context.Context, eventID string, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.SetNX(ctx, eventKey(eventID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to set event marker: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
