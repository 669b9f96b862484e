package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/types"
)

// cartTTL keeps abandoned carts from accumulating in redis.
const cartTTL = 14 * 24 * time.Hour

type redisStore struct {
	rdb *goredis.Client
	key string
	log *logger.Logger
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis opens the redis cache backend, keyed per session.
func NewRedis(opts RedisOptions, sessionID string, log *logger.Logger) (Store, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis cache: %w", err)
	}
	return &redisStore{
		rdb: rdb,
		key: fmt.Sprintf("petshop:cart:%s", sessionID),
		log: log.With("component", "CartCache"),
	}, nil
}

func (r *redisStore) Load(ctx context.Context) ([]types.CartItem, error) {
	raw, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []types.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []types.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		r.log.Warn("discarding unreadable cached cart", "error", err)
		return []types.CartItem{}, nil
	}
	if items == nil {
		items = []types.CartItem{}
	}
	return items, nil
}

func (r *redisStore) Save(ctx context.Context, items []types.CartItem) error {
	if items == nil {
		items = []types.CartItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key, payload, cartTTL).Err()
}

func (r *redisStore) Clear(ctx context.Context) error {
	return r.rdb.Del(ctx, r.key).Err()
}
