package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "R$ 0,00"},
		{0.5, "R$ 0,50"},
		{9.99, "R$ 9,99"},
		{353, "R$ 353,00"},
		{450, "R$ 450,00"},
		{1234.56, "R$ 1.234,56"},
		{1000000, "R$ 1.000.000,00"},
		{-278.5, "-R$ 278,50"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatBRL(tc.amount))
	}
}

func TestFormatBRL_RoundsSubCentAmounts(t *testing.T) {
	assert.Equal(t, "R$ 10,01", FormatBRL(10.006))
	assert.Equal(t, "R$ 10,00", FormatBRL(10.004))
}

func TestFormatBRLCents(t *testing.T) {
	assert.Equal(t, "R$ 450,00", FormatBRLCents(45000))
	assert.Equal(t, "R$ 128,00", FormatBRLCents(12800))
	assert.Equal(t, "R$ 1.234,56", FormatBRLCents(123456))
}
