package clients

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/credit-simulator/internal/cfg"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const redisClientName = "credit-simulator"

// RedisClient - клиент кэша каталога.
type RedisClient struct {
	Client *r.Client
	addr   string
}

func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	return &RedisClient{
		Client: r.NewClient(redisOptions(cfg)),
		addr:   cfg.Addr,
	}
}

// redisOptions: таймауты чтения и записи общие, дедлайн контекста запроса тоже соблюдается.
func redisOptions(cfg *cfg.RedisCfg) *r.Options {
	return &r.Options{
		Addr:                  cfg.Addr,
		ClientName:            redisClientName,
		Username:              cfg.User,
		Password:              cfg.Password,
		DB:                    cfg.DB,
		MaxRetries:            cfg.MaxRetries,
		DialTimeout:           cfg.DialTimeout,
		ReadTimeout:           cfg.Timeout,
		WriteTimeout:          cfg.Timeout,
		ContextTimeoutEnabled: true,
	}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("redis %s: %w", c.addr, err))
	}

	return nil
}

func (c *RedisClient) Close(context.Context) error {
	return c.Client.Close()
}
