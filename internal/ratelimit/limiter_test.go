package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLimiter_ReusedPerSource(t *testing.T) {
	l := NewSourceLimiterWithDefaults()

	assert.Same(t, l.GetLimiter("duffel"), l.GetLimiter("duffel"))
	assert.NotSame(t, l.GetLimiter("duffel"), l.GetLimiter("smiles"))
}

func TestSetSourceLimit(t *testing.T) {
	l := NewSourceLimiterWithDefaults()
	l.SetSourceLimit("smiles", 5, 5)

	limiter := l.GetLimiter("smiles")
	assert.InDelta(t, 5.0, float64(limiter.Limit()), 1e-9)
	assert.Equal(t, 5, limiter.Burst())
}

func TestWait_WithinBurstDoesNotBlock(t *testing.T) {
	l := NewSourceLimiter(Config{RequestsPerSecond: 1, BurstSize: 3})

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background(), "duffel"))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWait_CancelledContext(t *testing.T) {
	l := NewSourceLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 1})
	require.NoError(t, l.Wait(context.Background(), "duffel"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "duffel"), "an exhausted limiter fails fast on deadline")
}
