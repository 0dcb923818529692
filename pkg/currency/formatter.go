package currency

import (
	"fmt"
	"math"
)

// FormatBRL renders an amount in Brazilian real with the local convention:
// dot for thousands, comma for decimals ("R$ 1.234,56").
func FormatBRL(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	intPart := cents / 100
	fracPart := cents % 100

	formatted := addThousandsSeparator(fmt.Sprintf("%d", intPart), ".")

	result := fmt.Sprintf("R$ %s,%02d", formatted, fracPart)
	if negative {
		result = "-" + result
	}
	return result
}

// FormatBRLCents renders an integer-cents amount.
func FormatBRLCents(cents int64) string {
	return FormatBRL(float64(cents) / 100)
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
