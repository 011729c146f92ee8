package service

import (
	"math"
	"testing"

	"alpha_oracle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Confidence здесь — аддитивная эвристика, а не калиброванная вероятность:
// тесты фиксируют суммы инкрементов, а не статистический смысл.

func TestAnalyzeNetflows_UNIScenario(t *testing.T) {
	s := New(DefaultConfig())

	signals := s.AnalyzeNetflows(map[string][]models.NetflowRecord{
		"ethereum": {
			{
				TokenSymbol:   "UNI",
				NetFlow24hUSD: 60000,
				NetFlow1hUSD:  10000,
				NetFlow7dUSD:  5000,
				MarketCapUSD:  0,
				TraderCount:   4,
			},
		},
	})

	require.Len(t, signals, 1)
	sig := signals[0]
	assert.Equal(t, "UNI", sig.Symbol)
	assert.Equal(t, "ethereum", sig.Chain)
	assert.Equal(t, models.DirectionLong, sig.Direction)
	// 0.30 база + 0.20 (>50k) + 0.10 (трейдеры) + 0.10 (1h/24h) + 0.10 (7d/24h)
	assert.InDelta(t, 0.80, sig.Confidence, 1e-9)
	assert.Equal(t, float64(60000), sig.NetFlowUSD)
}

func TestAnalyzeNetflows_DirectionMatchesSign(t *testing.T) {
	s := New(DefaultConfig())

	signals := s.AnalyzeNetflows(map[string][]models.NetflowRecord{
		"base": {
			{TokenSymbol: "AERO", NetFlow24hUSD: 7000},
			{TokenSymbol: "BRETT", NetFlow24hUSD: -9000},
		},
	})

	require.Len(t, signals, 2)
	for _, sig := range signals {
		if sig.NetFlowUSD > 0 {
			assert.Equal(t, models.DirectionLong, sig.Direction)
		} else {
			assert.Equal(t, models.DirectionShort, sig.Direction)
		}
		assert.GreaterOrEqual(t, sig.Confidence, 0.0)
		assert.LessOrEqual(t, sig.Confidence, 1.0)
	}
}

func TestAnalyzeNetflows_FallbackTo1h(t *testing.T) {
	s := New(DefaultConfig())

	signals := s.AnalyzeNetflows(map[string][]models.NetflowRecord{
		"solana": {
			{TokenSymbol: "JUP", NetFlow24hUSD: 0, NetFlow1hUSD: -12000},
		},
	})

	require.Len(t, signals, 1)
	assert.Equal(t, models.DirectionShort, signals[0].Direction)
	assert.Equal(t, float64(-12000), signals[0].NetFlowUSD)
}

func TestAnalyzeNetflows_Discards(t *testing.T) {
	s := New(DefaultConfig())

	signals := s.AnalyzeNetflows(map[string][]models.NetflowRecord{
		"ethereum": {
			{TokenSymbol: "", NetFlow24hUSD: 999999},          // без символа
			{TokenSymbol: "DEAD", NetFlow24hUSD: 0},           // нулевой поток
			{TokenSymbol: "DUST", NetFlow24hUSD: 100},         // ниже обоих порогов
			{TokenSymbol: "PCT", NetFlow24hUSD: 900, MarketCapUSD: 100_000}, // 0.9% mcap — проходит
		},
	})

	require.Len(t, signals, 1)
	assert.Equal(t, "PCT", signals[0].Symbol)
}

func TestAnalyzeNetflows_ConfidenceCappedAtOne(t *testing.T) {
	s := New(DefaultConfig())

	signals := s.AnalyzeNetflows(map[string][]models.NetflowRecord{
		"ethereum": {
			{
				TokenSymbol:   "ETH",
				NetFlow24hUSD: 500000,
				NetFlow1hUSD:  50000,
				NetFlow7dUSD:  900000,
				TraderCount:   12,
			},
		},
	})

	require.Len(t, signals, 1)
	// 0.3+0.2+0.2+0.1+0.1+0.1 = 1.0, клэмп держит
	assert.Equal(t, 1.0, signals[0].Confidence)
}

func TestAnalyzeNetflows_SortedByAbsFlow(t *testing.T) {
	s := New(DefaultConfig())

	signals := s.AnalyzeNetflows(map[string][]models.NetflowRecord{
		"ethereum": {
			{TokenSymbol: "A", NetFlow24hUSD: 10000},
			{TokenSymbol: "B", NetFlow24hUSD: -80000},
			{TokenSymbol: "C", NetFlow24hUSD: 30000},
		},
	})

	require.Len(t, signals, 3)
	for i := 1; i < len(signals); i++ {
		assert.GreaterOrEqual(t,
			math.Abs(signals[i-1].NetFlowUSD),
			math.Abs(signals[i].NetFlowUSD))
	}
}
