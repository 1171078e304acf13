// Package jitter считает задержки между повторами с элементом случайности,
// чтобы воркеры и публикаторы не повторяли запросы к Kafka и MinIO синхронно.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter - стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Backoff описывает политику повторов: задержка удваивается от Base до Max,
// к ней добавляется случайная доля Factor.
type Backoff struct {
	Base   time.Duration
	Max    time.Duration
	Factor float64
}

// NewBackoff возвращает политику с DefaultJitter.
func NewBackoff(base, max time.Duration) Backoff {
	return Backoff{Base: base, Max: max, Factor: DefaultJitter}
}

// Delay возвращает задержку перед повтором attempt (нумерация с нуля).
func (b Backoff) Delay(attempt int) time.Duration {
	return Duration(b.cap(attempt), b.Factor)
}

// Wait ждёт Delay(attempt). Возвращает false, если done закрылся раньше.
func (b Backoff) Wait(attempt int, done <-chan struct{}) bool {
	timer := time.NewTimer(b.Delay(attempt))
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-done:
		return false
	}
}

func (b Backoff) cap(attempt int) time.Duration {
	backoff := b.Base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > b.Max {
			return b.Max
		}
	}
	return backoff
}

// Duration возвращает продолжительность с применённым джиттером.
// Результат находится в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	jitter := globalRand.Float64() * jitterFactor * float64(d)
	randMutex.Unlock()
	return d + time.Duration(jitter)
}

// ExponentialBackoff - Backoff{base, max, jitterFactor}.Delay(attempt) одной строкой.
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	return Backoff{Base: base, Max: max, Factor: jitterFactor}.Delay(attempt)
}
