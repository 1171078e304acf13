package infrastructure

import (
	"context"
	"errors"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
)

// FanoutPublisher отправляет результат во все настроенные публикаторы.
// Ошибка одного не мешает остальным, все ошибки объединяются.
type FanoutPublisher struct {
	publishers []usecase.ResultPublisher
}

func NewFanoutPublisher(publishers ...usecase.ResultPublisher) *FanoutPublisher {
	return &FanoutPublisher{publishers: publishers}
}

func (f *FanoutPublisher) Publish(ctx context.Context, sim *domain.Simulation) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, sim); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
