package converter

import (
	"fmt"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует записи produto в доменные продукты.
type ProductConverter interface {
	ToEntity(model *ProductModel) (*domain.Product, error)
	ToArrEntity(models []ProductModel) ([]domain.Product, error)
	ToBounds(model *BoundsModel) (*domain.CatalogBounds, error)
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) (*domain.Product, error) {
	const op = "ProductConverter.ToEntity"

	rate, err := decimal.NewFromString(model.Rate)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("pc_taxa_juros of product %d: %w", model.ID, err))
	}

	minPrincipal, err := decimal.NewFromString(model.MinPrincipal)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("vr_minimo of product %d: %w", model.ID, err))
	}

	maxPrincipal, err := parseOptionalDecimal(model.MaxPrincipal)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("vr_maximo of product %d: %w", model.ID, err))
	}

	product := &domain.Product{
		ID:           model.ID,
		Name:         model.Name,
		Rate:         rate,
		MinTerm:      int(model.MinTerm),
		MinPrincipal: minPrincipal,
		MaxPrincipal: maxPrincipal,
	}
	if model.MaxTerm != nil {
		maxTerm := int(*model.MaxTerm)
		product.MaxTerm = &maxTerm
	}

	return product, nil
}

func (c *ProductConverterImpl) ToArrEntity(models []ProductModel) ([]domain.Product, error) {
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

// ToBounds возвращает e.ErrProductNotFound, если каталог пуст (оба агрегата NULL)
// или в каталоге нет ни одного продукта с ограниченной суммой.
func (c *ProductConverterImpl) ToBounds(model *BoundsModel) (*domain.CatalogBounds, error) {
	const op = "ProductConverter.ToBounds"

	if model.MinPrincipal == nil || model.MaxPrincipal == nil {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	minPrincipal, err := decimal.NewFromString(*model.MinPrincipal)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	maxPrincipal, err := decimal.NewFromString(*model.MaxPrincipal)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return domain.NewCatalogBounds(minPrincipal, maxPrincipal), nil
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}

	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		Key:         entity.Key,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		Attempts:    int32(entity.Attempts),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}

	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		Key:         model.Key,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		Attempts:    int(model.Attempts),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}

func parseOptionalDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}

	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}
