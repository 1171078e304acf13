package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/credit-simulator/pkg/logger"
)

// ErrShutdownInterrupted - контекст остановки истёк раньше, чем закрылись все ресурсы.
var ErrShutdownInterrupted = errors.New("shutdown interrupted")

// Func - сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

type resource struct {
	name  string
	close Func
}

// Closer закрывает зарегистрированные ресурсы в обратном порядке (LIFO), ровно один раз.
type Closer struct {
	mu        sync.Mutex
	resources []resource
	once      sync.Once
	err       error

	forcedTimeout time.Duration
	logger        logger.Logger
}

// NewCloser создаёт Closer. forcedTimeout - сколько даётся ресурсам, не успевшим закрыться
// до отмены контекста Close; ноль означает значение по умолчанию.
func NewCloser(forcedTimeout time.Duration, logger logger.Logger) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{
		forcedTimeout: forcedTimeout,
		logger:        logger,
	}
}

// AddNamed регистрирует ресурс. Имя попадает в лог и в текст ошибки закрытия.
func (c *Closer) AddNamed(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = append(c.resources, resource{name: name, close: f})
}

// Close закрывает ресурсы от последнего к первому. Если ctx отменён посреди остановки,
// незакрытые ресурсы закрываются параллельно с собственным таймаутом.
// Повторные вызовы возвращают результат первого.
func (c *Closer) Close(ctx context.Context) error {
	c.once.Do(func() {
		c.mu.Lock()
		resources := c.resources
		c.mu.Unlock()

		remaining, errs := c.closeInOrder(ctx, resources)
		if len(remaining) == 0 {
			c.err = errors.Join(errs...)
			return
		}

		c.logger.Warnf("shutdown deadline exceeded, forcing %d resource(s)", len(remaining))
		errs = append(errs, c.forceClose(remaining)...)

		interrupted := fmt.Errorf("%w after %d/%d resources",
			ErrShutdownInterrupted, len(resources)-len(remaining), len(resources))
		c.err = errors.Join(append([]error{interrupted}, errs...)...)
	})

	return c.err
}

// closeInOrder возвращает ресурсы, до которых не дошла очередь, включая тот, на котором истёк ctx.
func (c *Closer) closeInOrder(ctx context.Context, resources []resource) ([]resource, []error) {
	var errs []error
	for i := len(resources) - 1; i >= 0; i-- {
		r := resources[i]
		started := time.Now()
		done := make(chan error, 1)

		go func() {
			done <- r.close(ctx)
		}()

		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
				continue
			}
			c.logger.Debugf("%s closed in %s", r.name, time.Since(started))
		case <-ctx.Done():
			return resources[:i+1], errs
		}
	}

	return nil, errs
}

func (c *Closer) forceClose(resources []resource) []error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, r := range resources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.close(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s (forced): %w", r.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
