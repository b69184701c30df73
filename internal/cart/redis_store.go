package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each cart as a Redis list of JSON-encoded products.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (r *RedisStore) Items(ctx context.Context, cartID string) ([]domain.Product, error) {
	raw, err := r.client.LRange(ctx, cartKey(cartID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "redis lrange failed")
	}

	items := make([]domain.Product, 0, len(raw))
	for _, entry := range raw {
		var p domain.Product
		if err := json.Unmarshal([]byte(entry), &p); err != nil {
			return nil, errors.Wrap(err, "unmarshal cart entry failed")
		}
		items = append(items, p)
	}
	return items, nil
}

// Append pushes the entry and refreshes the cart's TTL in one round trip.
func (r *RedisStore) Append(ctx context.Context, cartID string, p domain.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshal cart entry failed")
	}

	key := cartKey(cartID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, string(data))
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "redis rpush failed")
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return errors.Wrap(err, "redis delete failed")
	}
	return nil
}

func cartKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}
