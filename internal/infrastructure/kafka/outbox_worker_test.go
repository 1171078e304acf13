package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/credit-simulator/internal/cfg"
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/DRSN-tech/credit-simulator/pkg/jitter"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutboxRepo struct {
	mu        sync.Mutex
	pending   []*usecase.OutboxEvent
	processed []int64
	failed    []int64
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := min(limit, len(f.pending))
	batch := f.pending[:n]
	f.pending = f.pending[n:]
	return batch, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed = append(f.processed, id)
	return nil
}

func (f *fakeOutboxRepo) MarkAsFailed(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, id)
	return nil
}

type fakeProducer struct {
	mu       sync.Mutex
	errs     []error
	calls    int
	keys     []string
	requests []*usecase.WriteRawMessageReq
}

func (f *fakeProducer) WriteRawMessage(_ context.Context, req *usecase.WriteRawMessageReq) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return err
		}
	}
	f.keys = append(f.keys, req.Key)
	f.requests = append(f.requests, req)
	return nil
}

func newTestWorker(repo *fakeOutboxRepo, producer *fakeProducer, batchSize int) *OutboxWorker {
	w := NewOutboxWorker(repo, logger.NewNop(), producer, "", &cfg.PublishCfg{
		OutboxBatchSize:  batchSize,
		OutboxMaxRetries: 2,
	})
	w.backoff = jitter.NewBackoff(time.Millisecond, time.Millisecond)
	return w
}

func events(n int) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, n)
	for i := 1; i <= n; i++ {
		ev := usecase.NewOutboxEvent("ev", usecase.SimulationCreated, "1", []byte(`{}`))
		ev.ID = int64(i)
		result = append(result, ev)
	}
	return result
}

func TestOutboxWorker_Drain(t *testing.T) {
	repo := &fakeOutboxRepo{pending: events(5)}
	producer := &fakeProducer{}

	newTestWorker(repo, producer, 2).drain(context.Background())

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, repo.processed)
	assert.Empty(t, repo.failed)
	assert.Equal(t, 5, producer.calls)
	assert.Equal(t, []string{"1", "1", "1", "1", "1"}, producer.keys)
	require.Len(t, producer.requests, 5)
	assert.Equal(t, "ev", producer.requests[0].EventID)
	assert.Equal(t, usecase.SimulationCreated, producer.requests[0].EventType)
}

func TestOutboxWorker_ProcessBatch(t *testing.T) {
	t.Run("retryable error recovers", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: events(1)}
		producer := &fakeProducer{errs: []error{errors.New("dial tcp: connection refused")}}

		hasMore, err := newTestWorker(repo, producer, 10).processBatch(context.Background())
		require.NoError(t, err)
		assert.False(t, hasMore)
		assert.Equal(t, []int64{1}, repo.processed)
		assert.Equal(t, 2, producer.calls)
	})

	t.Run("retries exhausted returns event to pending", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: events(1)}
		broker := errors.New("broker not available")
		producer := &fakeProducer{errs: []error{broker, broker, broker, broker}}

		_, err := newTestWorker(repo, producer, 10).processBatch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, repo.failed)
		assert.Empty(t, repo.processed)
		assert.Equal(t, 3, producer.calls)
	})

	t.Run("permanent error is not retried", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: events(2)}
		producer := &fakeProducer{errs: []error{errors.New("message too large")}}

		hasMore, err := newTestWorker(repo, producer, 2).processBatch(context.Background())
		require.NoError(t, err)
		assert.False(t, hasMore, "batch with failures must not trigger an immediate re-fetch")
		assert.Equal(t, []int64{1}, repo.failed)
		assert.Equal(t, []int64{2}, repo.processed)
		assert.Equal(t, 2, producer.calls)
	})

	t.Run("full batch asks for more", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: events(3)}

		hasMore, err := newTestWorker(repo, &fakeProducer{}, 3).processBatch(context.Background())
		require.NoError(t, err)
		assert.True(t, hasMore)
	})
}

func TestOutboxWorker_StopIsIdempotent(t *testing.T) {
	w := newTestWorker(&fakeOutboxRepo{}, &fakeProducer{}, 1)
	assert.NoError(t, w.Stop(context.Background()))
	assert.NoError(t, w.Stop(context.Background()))
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"refused", errors.New("dial tcp 127.0.0.1:9092: connect: Connection Refused"), true},
		{"timeout", errors.New("read: i/o timeout"), true},
		{"deadline", context.DeadlineExceeded, true},
		{"leader", errors.New("[5] Leader Not Available"), true},
		{"permanent", errors.New("[10] Message Size Too Large"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
