package usecase

import (
	"context"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductRepository ищет продукт по сумме и отдаёт границы каталога.
type ProductRepository interface {
	Bounds(ctx context.Context) (*domain.CatalogBounds, error)
	FindByPrincipal(ctx context.Context, principal decimal.Decimal) (*domain.Product, error)
	FindUnbounded(ctx context.Context) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

// CacheRepository кэширует агрегаты каталога. Промах возвращает e.ErrCacheMiss.
type CacheRepository interface {
	GetBounds(ctx context.Context) (*domain.CatalogBounds, error)
	SetBounds(ctx context.Context, bounds *domain.CatalogBounds) error
	GetProducts(ctx context.Context) ([]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64) error
}

type ArchiveRepository interface {
	Upload(ctx context.Context, key string, payload []byte) (string, error)
}
