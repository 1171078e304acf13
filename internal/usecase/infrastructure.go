package usecase

import (
	"context"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
)

// ResultPublisher отправляет готовую симуляцию во внешний поток.
// Вызывается в фоне, ошибка только логируется.
type ResultPublisher interface {
	Publish(ctx context.Context, simulation *domain.Simulation) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
