package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/credit-simulator/internal/cfg"
	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/internal/repository/redis/converter"
	"github.com/DRSN-tech/credit-simulator/pkg/clients"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

const (
	boundsKey   = "catalog:bounds"
	productsKey = "catalog:products"
)

// CacheRepo кэширует агрегаты каталога продуктов. Каталог меняется только миграциями,
// поэтому достаточно TTL без явной инвалидации.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.CatalogConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.CatalogConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetBounds возвращает минимальную и максимальную сумму каталога либо e.ErrCacheMiss.
func (r *CacheRepo) GetBounds(ctx context.Context) (*domain.CatalogBounds, error) {
	data, err := r.get(ctx, boundsKey)
	if err != nil {
		return nil, err
	}

	var model converter.BoundsRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		r.evict(ctx, boundsKey)
		return nil, e.ErrCacheMiss
	}

	bounds, err := r.conv.ToBounds(&model)
	if err != nil {
		r.logger.Warnf("Corrupted bounds in cache: %v", e.Wrap(whereami.WhereAmI(), err))
		r.evict(ctx, boundsKey)
		return nil, e.ErrCacheMiss
	}

	return bounds, nil
}

func (r *CacheRepo) SetBounds(ctx context.Context, bounds *domain.CatalogBounds) error {
	data, err := json.Marshal(r.conv.ToBoundsRedisModel(bounds))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return r.set(ctx, boundsKey, data)
}

// GetProducts возвращает закэшированный список продуктов либо e.ErrCacheMiss.
func (r *CacheRepo) GetProducts(ctx context.Context) ([]domain.Product, error) {
	data, err := r.get(ctx, productsKey)
	if err != nil {
		return nil, err
	}

	var models []converter.ProductRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		r.evict(ctx, productsKey)
		return nil, e.ErrCacheMiss
	}

	products, err := r.conv.ToArrEntity(models)
	if err != nil {
		r.logger.Warnf("Corrupted products in cache: %v", e.Wrap(whereami.WhereAmI(), err))
		r.evict(ctx, productsKey)
		return nil, e.ErrCacheMiss
	}

	return products, nil
}

func (r *CacheRepo) SetProducts(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(r.conv.ToArrRedisModel(products))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return r.set(ctx, productsKey, data)
}

// get читает сырое значение ключа. goredis.Nil превращается в e.ErrCacheMiss.
func (r *CacheRepo) get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, e.ErrCacheMiss
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

func (r *CacheRepo) set(ctx context.Context, key string, data []byte) error {
	if err := r.client.Client.Set(ctx, key, data, r.cfg.CatalogTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *CacheRepo) evict(ctx context.Context, key string) {
	if err := r.client.Client.Del(ctx, key).Err(); err != nil {
		r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}
