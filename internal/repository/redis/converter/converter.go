package converter

import (
	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

// CatalogConverter преобразует продукты и границы каталога между domain и JSON-моделью Redis.
type CatalogConverter interface {
	ToRedisModel(entity *domain.Product) ProductRedisModel
	ToEntity(model *ProductRedisModel) (*domain.Product, error)
	ToArrRedisModel(entities []domain.Product) []ProductRedisModel
	ToArrEntity(models []ProductRedisModel) ([]domain.Product, error)
	ToBoundsRedisModel(entity *domain.CatalogBounds) BoundsRedisModel
	ToBounds(model *BoundsRedisModel) (*domain.CatalogBounds, error)
}

type CatalogConverterImpl struct{}

func NewCatalogConverterImpl() *CatalogConverterImpl {
	return &CatalogConverterImpl{}
}

func (c *CatalogConverterImpl) ToRedisModel(entity *domain.Product) ProductRedisModel {
	model := ProductRedisModel{
		ID:           entity.ID,
		Name:         entity.Name,
		Rate:         entity.Rate.String(),
		MinTerm:      entity.MinTerm,
		MaxTerm:      entity.MaxTerm,
		MinPrincipal: entity.MinPrincipal.String(),
	}
	if entity.MaxPrincipal != nil {
		maxPrincipal := entity.MaxPrincipal.String()
		model.MaxPrincipal = &maxPrincipal
	}

	return model
}

func (c *CatalogConverterImpl) ToEntity(model *ProductRedisModel) (*domain.Product, error) {
	rate, err := decimal.NewFromString(model.Rate)
	if err != nil {
		return nil, err
	}

	minPrincipal, err := decimal.NewFromString(model.MinPrincipal)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:           model.ID,
		Name:         model.Name,
		Rate:         rate,
		MinTerm:      model.MinTerm,
		MaxTerm:      model.MaxTerm,
		MinPrincipal: minPrincipal,
	}

	if model.MaxPrincipal != nil {
		maxPrincipal, err := decimal.NewFromString(*model.MaxPrincipal)
		if err != nil {
			return nil, err
		}
		product.MaxPrincipal = &maxPrincipal
	}

	return product, nil
}

func (c *CatalogConverterImpl) ToArrRedisModel(entities []domain.Product) []ProductRedisModel {
	result := make([]ProductRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, c.ToRedisModel(&entities[i]))
	}

	return result
}

func (c *CatalogConverterImpl) ToArrEntity(models []ProductRedisModel) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		product, err := c.ToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *product)
	}

	return result, nil
}

func (c *CatalogConverterImpl) ToBoundsRedisModel(entity *domain.CatalogBounds) BoundsRedisModel {
	return BoundsRedisModel{
		MinPrincipal: entity.MinPrincipal.String(),
		MaxPrincipal: entity.MaxPrincipal.String(),
	}
}

func (c *CatalogConverterImpl) ToBounds(model *BoundsRedisModel) (*domain.CatalogBounds, error) {
	minPrincipal, err := decimal.NewFromString(model.MinPrincipal)
	if err != nil {
		return nil, err
	}

	maxPrincipal, err := decimal.NewFromString(model.MaxPrincipal)
	if err != nil {
		return nil, err
	}

	return domain.NewCatalogBounds(minPrincipal, maxPrincipal), nil
}
