package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SearchesTotal.WithLabelValues("cached").Inc()
	m.SearchesTotal.WithLabelValues("live").Inc()
	m.SearchesTotal.WithLabelValues("live").Inc()
	m.CacheHitsTotal.Inc()
	m.SourceFailures.WithLabelValues("duffel").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("cached")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("live")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SourceFailures.WithLabelValues("duffel")))
}

func TestNew_IndependentRegistries(t *testing.T) {
	// Two instances must not collide as long as each has its own registry.
	require.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
