package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

func TestDisabledStore(t *testing.T) {
	s := NewDisabledStore()

	err := s.Save(context.Background(), []models.Offer{{ID: "a", Hash: "h"}})
	require.NoError(t, err, "saves are silently dropped without a database")

	_, err = s.GetByHash(context.Background(), "h")
	assert.ErrorIs(t, err, ErrOfferNotFound)
}
