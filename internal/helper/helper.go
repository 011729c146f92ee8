package helper

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Цены храним как u64 с 6 знаками (micro-units, как USDC).
const PriceDecimals = 6

var priceMultiplier = decimal.New(1, PriceDecimals)

// PriceToU64 переводит цену в micro-units. Через decimal, чтобы не ловить
// дрожание двоичного float на хранимых значениях.
func PriceToU64(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(priceMultiplier).IntPart()
}

// PriceFromU64 — обратно в float для сравнения с референсной ценой.
func PriceFromU64(v int64) float64 {
	f, _ := decimal.New(v, -PriceDecimals).Float64()
	return f
}

func NormSymbol(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
