package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration_Range(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 100; i++ {
		d := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}

func TestBackoff_Delay(t *testing.T) {
	b := Backoff{Base: 100 * time.Millisecond, Max: time.Second}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
		{40, time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Delay(tt.attempt), "attempt %d", tt.attempt)
		assert.Equal(t, tt.want, ExponentialBackoff(b.Base, b.Max, tt.attempt, 0), "attempt %d", tt.attempt)
	}
}

func TestBackoff_Wait(t *testing.T) {
	t.Run("elapses", func(t *testing.T) {
		assert.True(t, NewBackoff(time.Millisecond, time.Millisecond).Wait(0, nil))
	})

	t.Run("interrupted", func(t *testing.T) {
		done := make(chan struct{})
		close(done)
		assert.False(t, NewBackoff(time.Hour, time.Hour).Wait(0, done))
	})
}
