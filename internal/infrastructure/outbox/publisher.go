package outbox

import (
	"context"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/internal/infrastructure"
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/DRSN-tech/credit-simulator/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// Publisher сохраняет событие симуляции в outbox_events. До Kafka его довозит kafka.OutboxWorker.
type Publisher struct {
	dbPool     transaction.Transactional
	outboxRepo usecase.OutboxRepository
}

func NewPublisher(dbPool transaction.Transactional, outboxRepo usecase.OutboxRepository) *Publisher {
	return &Publisher{
		dbPool:     dbPool,
		outboxRepo: outboxRepo,
	}
}

func (p *Publisher) Publish(ctx context.Context, sim *domain.Simulation) (err error) {
	const op = "OutboxPublisher.Publish"

	event := infrastructure.NewSimulationEvent(sim)
	payload, err := event.Encode()
	if err != nil {
		return e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()

	pgxTx, ok := tx.Transaction().(pgx.Tx)
	if !ok {
		return e.Wrap(op, e.ErrTransactionNotFound)
	}
	ctx = tr.WithTx(ctx, pgxTx)

	outboxEvent := usecase.NewOutboxEvent(event.EventID, usecase.SimulationCreated, event.Key(), payload)
	if _, err = p.outboxRepo.Create(ctx, outboxEvent); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
