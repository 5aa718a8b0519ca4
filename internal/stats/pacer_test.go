package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer_Slots(t *testing.T) {
	p := NewPacer(10)
	assert.Equal(t, 100*time.Millisecond, p.Interval())

	first := p.Next()
	second := p.Next()
	third := p.Next()

	assert.Equal(t, 100*time.Millisecond, second.Sub(first))
	assert.Equal(t, 100*time.Millisecond, third.Sub(second))
}

func TestPacer_NoBurstAfterIdle(t *testing.T) {
	p := NewPacer(1000)
	p.Next()
	time.Sleep(20 * time.Millisecond)

	now := time.Now()
	slot := p.Next()
	assert.False(t, slot.Before(now))
	assert.Equal(t, time.Millisecond, p.Next().Sub(slot))
}

func TestPacer_Unpaced(t *testing.T) {
	p := NewPacer(0)
	assert.Zero(t, p.Interval())
	require.NoError(t, p.Wait(context.Background()))
	require.NoError(t, p.Wait(context.Background()))
}

func TestPacer_Wait(t *testing.T) {
	p := NewPacer(20)
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestPacer_WaitCancelled(t *testing.T) {
	p := NewPacer(0.5)
	p.Next()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)
}
