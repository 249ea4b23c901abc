package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// MicrosToUnits converte milionésimos da moeda (cost_micros) para unidades.
func MicrosToUnits(micros float64) float64 {
	v, _ := decimal.NewFromFloat(micros).Shift(-6).Float64()
	return v
}

// TruncateText corta s em max runas, terminando com "...".
func TruncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
