package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceToU64(t *testing.T) {
	assert.Equal(t, int64(1_500000), PriceToU64(1.5))
	assert.Equal(t, int64(123456), PriceToU64(0.123456))
	assert.Equal(t, int64(98750_000000), PriceToU64(98750))
	// лишние знаки отбрасываются, не округляются вверх
	assert.Equal(t, int64(123456), PriceToU64(0.1234569))
}

func TestPriceFromU64(t *testing.T) {
	assert.Equal(t, 1.5, PriceFromU64(1_500000))
	assert.Equal(t, 0.000001, PriceFromU64(1))
}

// u64 -> float -> u64 обязан быть тождеством: иначе ресейвы журнала
// дрейфуют хранимые цены.
func TestPriceRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, 999999, 1_000000, 42_123456, 98750_000000} {
		assert.Equal(t, v, PriceToU64(PriceFromU64(v)), "v=%d", v)
	}
}

func TestNormSymbol(t *testing.T) {
	assert.Equal(t, "BTC", NormSymbol(" btc "))
	assert.Equal(t, "WETH", NormSymbol("wEth"))
	assert.Equal(t, "", NormSymbol("   "))
}
