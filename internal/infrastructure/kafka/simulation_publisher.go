package kafka

import (
	"context"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/internal/infrastructure"
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
)

// SimulationPublisher пишет событие симуляции сразу в Kafka, без outbox.
type SimulationPublisher struct {
	producer usecase.MessageProducer
}

func NewSimulationPublisher(producer usecase.MessageProducer) *SimulationPublisher {
	return &SimulationPublisher{producer: producer}
}

func (s *SimulationPublisher) Publish(ctx context.Context, sim *domain.Simulation) error {
	const op = "SimulationPublisher.Publish"

	event := infrastructure.NewSimulationEvent(sim)
	payload, err := event.Encode()
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := s.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.EventID, usecase.OutboxEventType(event.EventType), event.Key(), payload)); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
