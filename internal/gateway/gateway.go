// Package gateway fans a search out to a set of offer sources concurrently
// and merges the partial results. One gateway instance exists per market
// side: cash sources and miles sources.
package gateway

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/providers"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/ratelimit"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/pkg/metrics"
)

type Config struct {
	// SourceTimeout bounds each source call independently; exceeding it is
	// treated like any other source failure.
	SourceTimeout time.Duration
	MaxRetries    int
	RetryDelays   []time.Duration
	RateLimiter   *ratelimit.SourceLimiter
	Metrics       *metrics.Metrics
}

// Gateway invokes every available source concurrently. A failing or slow
// source never aborts or delays the others; its outcome is recorded and
// logged, and the union of the successful sources' offers is returned. An
// all-failed or all-empty fan-out yields an empty result, not an error.
type Gateway struct {
	name    string
	sources []providers.Source
	config  Config
	logger  *slog.Logger
}

// Result captures the outcome of one fan-out.
type Result struct {
	Offers           []models.Offer
	SourcesQueried   int
	SourcesSucceeded int
	SourcesFailed    int
	FailedSources    []string
}

func New(name string, sources []providers.Source, config Config) *Gateway {
	return &Gateway{
		name:    name,
		sources: sources,
		config:  config,
		logger:  slog.Default().With("component", "gateway", "gateway", name),
	}
}

func (g *Gateway) Search(ctx context.Context, q models.SearchQuery) *Result {
	available := make([]providers.Source, 0, len(g.sources))
	for _, s := range g.sources {
		if s.IsAvailable() {
			available = append(available, s)
		}
	}

	result := &Result{
		Offers:         make([]models.Offer, 0),
		SourcesQueried: len(available),
	}

	type sourceOutcome struct {
		source string
		offers []models.Offer
		err    error
	}

	outcomes := make(chan sourceOutcome, len(available))
	var wg sync.WaitGroup

	for _, src := range available {
		wg.Add(1)
		go func(src providers.Source) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, g.config.SourceTimeout)
			defer cancel()

			if g.config.RateLimiter != nil {
				if err := g.config.RateLimiter.Wait(callCtx, src.Name()); err != nil {
					outcomes <- sourceOutcome{source: src.Name(), err: err}
					return
				}
			}

			start := time.Now()
			offers, err := g.searchWithRetry(callCtx, src, q)
			if m := g.config.Metrics; m != nil {
				m.SourceCallsTotal.WithLabelValues(src.Name()).Inc()
				m.SourceCallDuration.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())
			}
			outcomes <- sourceOutcome{source: src.Name(), offers: offers, err: err}
		}(src)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for oc := range outcomes {
		if oc.err != nil {
			g.logger.Warn("source failed", "source", oc.source, "error", oc.err)
			if m := g.config.Metrics; m != nil {
				m.SourceFailures.WithLabelValues(oc.source).Inc()
			}
			result.SourcesFailed++
			result.FailedSources = append(result.FailedSources, oc.source)
			continue
		}
		result.SourcesSucceeded++
		result.Offers = append(result.Offers, oc.offers...)
	}

	return result
}

func (g *Gateway) searchWithRetry(ctx context.Context, src providers.Source, q models.SearchQuery) ([]models.Offer, error) {
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(g.config.RetryDelays) {
				delayIdx = len(g.config.RetryDelays) - 1
			}
			if delayIdx >= 0 {
				select {
				case <-time.After(g.config.RetryDelays[delayIdx]):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
		}

		offers, err := src.Search(ctx, q)
		if err == nil {
			return offers, nil
		}

		lastErr = err
		g.logger.Debug("source attempt failed", "source", src.Name(), "attempt", attempt+1, "error", err)
	}

	return nil, lastErr
}
