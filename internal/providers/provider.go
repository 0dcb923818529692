// Package providers defines the source adapter contract and the bundled stub
// adapters. The core is agnostic to how an adapter obtains offers; production
// adapters (NDC APIs, controlled scraping) plug in behind the same interface.
package providers

import (
	"context"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

// Source is one independent offer source. IsAvailable is a static capability
// check (credentials configured, scraping enabled) evaluated before each
// fan-out; unavailable sources are never invoked.
type Source interface {
	Name() string
	IsAvailable() bool
	Search(ctx context.Context, q models.SearchQuery) ([]models.Offer, error)
}

type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return e.Source + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func NewSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}
