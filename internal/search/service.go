// Package search orchestrates a query end to end: fingerprint, cache check,
// concurrent cash+miles fan-out, canonicalization, persistence, and ranking.
package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/canonical"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/cache"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/fingerprint"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/gateway"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/ranking"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/store"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/pkg/metrics"
)

// ErrNoOffersFound is the expected outcome when every source returned empty
// or failed. Callers branch on it; it is not an internal error.
var ErrNoOffersFound = errors.New("no offers found for the specified criteria")

const DefaultLimit = 5

// Fanout is the gateway contract the orchestrator depends on.
type Fanout interface {
	Search(ctx context.Context, q models.SearchQuery) *gateway.Result
}

// Options are per-request knobs. Zero values mean defaults: cache enabled,
// configured weights, top-5.
type Options struct {
	BypassCache  bool
	Weights      *ranking.Weights
	RatePerPoint float64
	Limit        int
}

type Service struct {
	cache   *cache.OfferCache
	cashGW  Fanout
	milesGW Fanout
	engine  *ranking.Engine
	offers  store.OfferStore
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(c *cache.OfferCache, cashGW, milesGW Fanout, engine *ranking.Engine, offers store.OfferStore, m *metrics.Metrics) *Service {
	return &Service{
		cache:   c,
		cashGW:  cashGW,
		milesGW: milesGW,
		engine:  engine,
		offers:  offers,
		metrics: m,
		logger:  slog.Default().With("component", "search"),
	}
}

// Search runs the full pipeline for one query. Validation failures and
// ErrNoOffersFound are typed, expected outcomes; source and cache failures
// are recovered internally and never surface.
func (s *Service) Search(ctx context.Context, q models.SearchQuery, opts Options) (*models.RankedResult, error) {
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	fp := fingerprint.Generate(q)
	engine := s.engineFor(opts)
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	if !opts.BypassCache {
		if entry, found := s.cache.Lookup(ctx, fp); found && s.cache.IsFresh(entry) {
			age := int(s.cache.Age(entry).Minutes())
			s.logger.Info("serving from cache", "fingerprint", fp, "age_minutes", age, "offers", len(entry.Offers))
			if s.metrics != nil {
				s.metrics.CacheHitsTotal.Inc()
				s.metrics.SearchesTotal.WithLabelValues("cached").Inc()
				s.metrics.SearchLatency.WithLabelValues("hit").Observe(time.Since(start).Seconds())
			}
			result := s.buildResult(engine, entry.Offers, &q, limit)
			result.Cached = true
			result.CacheAgeMinutes = &age
			return result, nil
		}
		if s.metrics != nil {
			s.metrics.CacheMissesTotal.Inc()
		}
	}

	offers, err := s.fetch(ctx, fp, q, opts.BypassCache)
	if err != nil {
		if s.metrics != nil {
			s.metrics.SearchesTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	if len(offers) == 0 {
		if s.metrics != nil {
			s.metrics.SearchesTotal.WithLabelValues("no_offers").Inc()
		}
		return nil, ErrNoOffersFound
	}

	if s.metrics != nil {
		s.metrics.SearchesTotal.WithLabelValues("live").Inc()
		s.metrics.SearchLatency.WithLabelValues("miss").Observe(time.Since(start).Seconds())
		s.metrics.OffersReturned.Observe(float64(len(offers)))
	}

	return s.buildResult(engine, offers, &q, limit), nil
}

// Compare re-ranks a caller-supplied offer set against custom preferences
// without fetching anything.
func (s *Service) Compare(offers []models.Offer, opts Options) *models.RankedResult {
	engine := s.engineFor(opts)
	return &models.RankedResult{
		Ranked:      engine.Rank(offers, nil),
		Assumptions: assumptions(engine),
	}
}

// GetOffer resolves a previously seen offer by canonical hash. Expired
// offers report store.ErrOfferNotFound.
func (s *Service) GetOffer(ctx context.Context, hash string) (*models.Offer, error) {
	return s.offers.GetByHash(ctx, hash)
}

// fetch runs the live fan-out. Identical concurrent searches share one
// fan-out through singleflight, keyed by fingerprint; bypass requests always
// fetch on their own.
func (s *Service) fetch(ctx context.Context, fp string, q models.SearchQuery, bypass bool) ([]models.Offer, error) {
	if bypass {
		return s.fanout(ctx, fp, q)
	}

	v, err, _ := s.group.Do(fp, func() (interface{}, error) {
		return s.fanout(ctx, fp, q)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Offer), nil
}

func (s *Service) fanout(ctx context.Context, fp string, q models.SearchQuery) ([]models.Offer, error) {
	type gatewayResult struct {
		result *gateway.Result
		miles  bool
	}

	results := make(chan gatewayResult, 2)
	go func() {
		results <- gatewayResult{result: s.cashGW.Search(ctx, q)}
	}()
	go func() {
		results <- gatewayResult{result: s.milesGW.Search(ctx, q), miles: true}
	}()

	var cash, miles *gateway.Result
	for i := 0; i < 2; i++ {
		gr := <-results
		if gr.miles {
			miles = gr.result
		} else {
			cash = gr.result
		}
	}

	union := make([]models.Offer, 0, len(cash.Offers)+len(miles.Offers))
	union = append(union, cash.Offers...)
	union = append(union, miles.Offers...)
	deduped := canonical.Dedupe(union)

	s.logger.Info("live fan-out complete",
		"fingerprint", fp,
		"cash_offers", len(cash.Offers),
		"miles_offers", len(miles.Offers),
		"deduped", len(deduped),
		"failed_sources", append(cash.FailedSources, miles.FailedSources...),
	)

	// A cancelled fetch must never write partial state.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(deduped) > 0 {
		if err := s.offers.Save(ctx, deduped); err != nil {
			s.logger.Warn("offer persistence failed", "error", err)
		}
		_ = s.cache.Store(ctx, fp, deduped)
	}

	return deduped, nil
}

func (s *Service) buildResult(engine *ranking.Engine, offers []models.Offer, q *models.SearchQuery, limit int) *models.RankedResult {
	ranked := engine.Rank(offers, q)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return &models.RankedResult{
		Ranked:      ranked,
		Assumptions: assumptions(engine),
	}
}

// engineFor returns the configured engine, or a per-request engine when the
// caller overrides weights or the points rate. Overrides are used exactly as
// supplied.
func (s *Service) engineFor(opts Options) *ranking.Engine {
	if opts.Weights == nil && opts.RatePerPoint == 0 {
		return s.engine
	}
	cfg := s.engine.Config()
	if opts.Weights != nil {
		cfg.Weights = *opts.Weights
	}
	if opts.RatePerPoint != 0 {
		cfg.RatePerPoint = opts.RatePerPoint
	}
	return ranking.NewEngine(cfg)
}

func assumptions(engine *ranking.Engine) models.Assumptions {
	cfg := engine.Config()
	return models.Assumptions{
		RatePerPoint:    cfg.RatePerPoint,
		PriceWeight:     cfg.Weights.Price,
		DurationWeight:  cfg.Weights.Duration,
		StopsWeight:     cfg.Weights.Stops,
		AncillaryWeight: cfg.Weights.Ancillary,
	}
}
