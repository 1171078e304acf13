package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
)

type publisherFunc func(ctx context.Context, sim *domain.Simulation) error

func (f publisherFunc) Publish(ctx context.Context, sim *domain.Simulation) error {
	return f(ctx, sim)
}

func TestFanoutPublisher(t *testing.T) {
	errKafka := errors.New("kafka down")
	errMinio := errors.New("minio down")
	calls := 0

	ok := publisherFunc(func(context.Context, *domain.Simulation) error { calls++; return nil })
	failKafka := publisherFunc(func(context.Context, *domain.Simulation) error { calls++; return errKafka })
	failMinio := publisherFunc(func(context.Context, *domain.Simulation) error { calls++; return errMinio })

	t.Run("all succeed", func(t *testing.T) {
		calls = 0
		assert.NoError(t, NewFanoutPublisher(ok, ok).Publish(context.Background(), &domain.Simulation{}))
		assert.Equal(t, 2, calls)
	})

	t.Run("failures are joined", func(t *testing.T) {
		calls = 0
		err := NewFanoutPublisher(failKafka, ok, failMinio).Publish(context.Background(), &domain.Simulation{})
		assert.ErrorIs(t, err, errKafka)
		assert.ErrorIs(t, err, errMinio)
		assert.Equal(t, 3, calls)
	})

	t.Run("no publishers", func(t *testing.T) {
		assert.NoError(t, NewFanoutPublisher().Publish(context.Background(), &domain.Simulation{}))
	})
}
