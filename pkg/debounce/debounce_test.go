package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/niksmo/storefront/pkg/debounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer(t *testing.T) {
	t.Run("FiresAfterQuietPeriod", func(t *testing.T) {
		d := debounce.New(10 * time.Millisecond)
		fired := make(chan struct{})
		d.Schedule(func() { close(fired) })

		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("debounced fn never fired")
		}
	})

	t.Run("BurstCollapsesIntoOneExecution", func(t *testing.T) {
		d := debounce.New(20 * time.Millisecond)
		var calls atomic.Int32
		for range 10 {
			d.Schedule(func() { calls.Add(1) })
			time.Sleep(time.Millisecond)
		}

		require.Eventually(t, func() bool {
			return calls.Load() == 1
		}, time.Second, 5*time.Millisecond)

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("CancelDropsPending", func(t *testing.T) {
		d := debounce.New(10 * time.Millisecond)
		var calls atomic.Int32
		d.Schedule(func() { calls.Add(1) })
		d.Cancel()

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("CancelWithoutScheduleIsNoop", func(t *testing.T) {
		d := debounce.New(time.Millisecond)
		d.Cancel()
	})
}
