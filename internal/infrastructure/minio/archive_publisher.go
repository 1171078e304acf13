package minio

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/internal/infrastructure"
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/DRSN-tech/credit-simulator/pkg/jitter"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
)

const (
	archivePrefix     = "simulacoes"
	uploadAttempts    = 3
	uploadBaseBackoff = 200 * time.Millisecond
	uploadMaxBackoff  = 2 * time.Second
)

// ArchivePublisher сохраняет каждое событие симуляции в MinIO.
type ArchivePublisher struct {
	archiveRepo usecase.ArchiveRepository
	logger      logger.Logger
	backoff     jitter.Backoff
}

func NewArchivePublisher(archiveRepo usecase.ArchiveRepository, logger logger.Logger) *ArchivePublisher {
	return &ArchivePublisher{
		archiveRepo: archiveRepo,
		logger:      logger,
		backoff:     jitter.NewBackoff(uploadBaseBackoff, uploadMaxBackoff),
	}
}

// Publish загружает JSON события, повторяя неудачные попытки с экспоненциальной задержкой и jitter.
func (a *ArchivePublisher) Publish(ctx context.Context, sim *domain.Simulation) error {
	const op = "ArchivePublisher.Publish"

	event := infrastructure.NewSimulationEvent(sim)
	payload, err := event.Encode()
	if err != nil {
		return e.Wrap(op, err)
	}

	key := ObjectKey(event.EventTimestamp, event.EventID)

	var lastErr error
	for attempt := 0; attempt < uploadAttempts; attempt++ {
		if _, lastErr = a.archiveRepo.Upload(ctx, key, payload); lastErr == nil {
			a.logger.Debugf("simulation archived, key=%s", key)
			return nil
		}

		if attempt == uploadAttempts-1 {
			break
		}

		if !a.backoff.Wait(attempt, ctx.Done()) {
			return e.Wrap(op, ctx.Err())
		}
	}

	return e.Wrap(op, fmt.Errorf("archive %s after %d attempts: %w", key, uploadAttempts, lastErr))
}

// ObjectKey раскладывает события по дате: simulacoes/YYYY/MM/DD/<eventId>.json.
func ObjectKey(ts time.Time, eventID string) string {
	return fmt.Sprintf("%s/%s/%s.json", archivePrefix, ts.UTC().Format("2006/01/02"), eventID)
}
