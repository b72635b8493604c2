// Package holds хранит временные удержания слотов в Redis.
//
// Каждое удержание лежит JSON-ом в ключе hold:<id>, а его id - в сортированном
// множестве holds:by_expiry со счетом, равным сроку истечения (unix секунды).
// Ключ живёт дольше самого удержания на retention, чтобы фоновый процесс успел
// освободить резерв, даже если проснулся с опозданием.
package holds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

const (
	keyPrefix = "hold:"
	expiryKey = "holds:by_expiry"

	defaultRetention = time.Hour
)

// Store хранилище удержаний
type Store struct {
	client    redis.UniversalClient
	retention time.Duration
}

// NewStore создает хранилище. retention <= 0 означает значение по умолчанию.
func NewStore(client redis.UniversalClient, retention time.Duration) *Store {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Store{client: client, retention: retention}
}

// Save сохраняет удержание до hold.ExpiresAt + retention
func (s *Store) Save(ctx context.Context, hold *domain.Hold, now time.Time) error {
	if hold.ID == "" || hold.ExpiresAt.IsZero() {
		return ErrInvalidHold
	}

	data, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrDecode, err)
	}

	ttl := hold.ExpiresAt.Sub(now) + s.retention
	if ttl <= 0 {
		return fmt.Errorf("%w: hold %s already past retention", ErrInvalidHold, hold.ID)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key(hold.ID), data, ttl)
	pipe.ZAdd(ctx, expiryKey, redis.Z{Score: float64(hold.ExpiresAt.Unix()), Member: hold.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: Save - exec pipeline: %v", ErrRedis, err)
	}

	return nil
}

// Get возвращает действующее удержание. Истекшее удержание считается отсутствующим.
func (s *Store) Get(ctx context.Context, id string, now time.Time) (*domain.Hold, error) {
	hold, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if hold.IsExpired(now) {
		return nil, ErrHoldNotFound
	}
	return hold, nil
}

// Delete удаляет удержание. Удаление отсутствующего удержания не ошибка.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key(id))
	pipe.ZRem(ctx, expiryKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: Delete - exec pipeline: %v", ErrRedis, err)
	}
	return nil
}

// ListExpired возвращает до limit удержаний, истекших к моменту now.
// Записи, у которых ключ уже исчез, убираются из индекса.
func (s *Store) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Hold, error) {
	ids, err := s.client.ZRangeByScore(ctx, expiryKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - zrangebyscore: %v", ErrRedis, err)
	}

	result := make([]domain.Hold, 0, len(ids))
	for _, id := range ids {
		hold, err := s.load(ctx, id)
		if errors.Is(err, ErrHoldNotFound) {
			if err := s.client.ZRem(ctx, expiryKey, id).Err(); err != nil {
				return nil, fmt.Errorf("%w: ListExpired - zrem: %v", ErrRedis, err)
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		if !hold.IsExpired(now) {
			continue
		}
		result = append(result, *hold)
	}

	return result, nil
}

func (s *Store) load(ctx context.Context, id string) (*domain.Hold, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrRedis, id, err)
	}

	var hold domain.Hold
	if err := json.Unmarshal(data, &hold); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, id, err)
	}
	return &hold, nil
}

func key(id string) string {
	return keyPrefix + id
}
