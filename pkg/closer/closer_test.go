package closer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/credit-simulator/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloser_LIFO(t *testing.T) {
	c := NewCloser(0, logger.NewNop())

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) Func {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	c.AddNamed("postgres", record("postgres"))
	c.AddNamed("redis", record("redis"))
	c.AddNamed("http server", record("http server"))

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http server", "redis", "postgres"}, order)
}

func TestCloser_NamedErrors(t *testing.T) {
	c := NewCloser(0, logger.NewNop())
	c.AddNamed("redis", func(context.Context) error { return errors.New("connection closed") })
	c.AddNamed("postgres", func(context.Context) error { return nil })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis: connection closed")
	assert.NotErrorIs(t, err, ErrShutdownInterrupted)
}

func TestCloser_CloseOnce(t *testing.T) {
	c := NewCloser(0, logger.NewNop())
	calls := 0
	c.AddNamed("kafka producer", func(context.Context) error { calls++; return nil })

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloser_ForcedOnTimeout(t *testing.T) {
	c := NewCloser(100*time.Millisecond, logger.NewNop())

	release := make(chan struct{})
	defer close(release)

	var (
		mu     sync.Mutex
		aCalls int
		bCalls int
	)
	c.AddNamed("postgres", func(context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		aCalls++
		return nil
	})
	c.AddNamed("http server", func(context.Context) error {
		mu.Lock()
		bCalls++
		first := bCalls == 1
		mu.Unlock()

		if first {
			<-release
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShutdownInterrupted)
	assert.Contains(t, err.Error(), "after 0/2 resources")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, aCalls, "remaining func must be force-closed")
	assert.Equal(t, 2, bCalls)
}

func TestCloser_ForcedErrorsAreNamed(t *testing.T) {
	c := NewCloser(50*time.Millisecond, logger.NewNop())

	release := make(chan struct{})
	defer close(release)

	c.AddNamed("redis", func(context.Context) error { return errors.New("pool closed") })
	var workerCalls atomic.Int32
	c.AddNamed("outbox worker", func(context.Context) error {
		if workerCalls.Add(1) == 1 {
			<-release
			return nil
		}
		return errors.New("still draining")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShutdownInterrupted)
	assert.Contains(t, err.Error(), "redis (forced): pool closed")
	assert.Contains(t, err.Error(), "outbox worker (forced): still draining")
}
