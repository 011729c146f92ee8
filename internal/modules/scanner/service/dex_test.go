package service

import (
	"testing"

	"alpha_oracle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDexTrades_VirtualScenario(t *testing.T) {
	s := New(DefaultConfig())

	// VIRTUAL: buys=8000, sells=2000, trades=4 -> ratio 0.8,
	// conf = min(0.3*2+0.2, 1) = 0.8, +0.1 за trades>=3 = 0.9
	signals := s.AnalyzeDexTrades(map[string][]models.DexTrade{
		"base": {
			{TokenBoughtSymbol: "VIRTUAL", TokenSoldSymbol: "USDC", TradeValueUSD: 5000},
			{TokenBoughtSymbol: "VIRTUAL", TokenSoldSymbol: "USDC", TradeValueUSD: 3000},
			{TokenBoughtSymbol: "USDT", TokenSoldSymbol: "VIRTUAL", TradeValueUSD: 1500},
			{TokenBoughtSymbol: "USDT", TokenSoldSymbol: "VIRTUAL", TradeValueUSD: 500},
		},
	})

	require.Len(t, signals, 1)
	sig := signals[0]
	assert.Equal(t, "VIRTUAL", sig.Symbol)
	assert.Equal(t, models.DirectionLong, sig.Direction)
	assert.InDelta(t, 0.8, sig.BuyRatio, 1e-9)
	assert.InDelta(t, 0.9, sig.Confidence, 1e-9)
	assert.Equal(t, float64(6000), sig.NetFlowUSD)
	assert.Equal(t, 4, sig.TradeCount)
}

func TestAnalyzeDexTrades_StablesNeverTargets(t *testing.T) {
	s := New(DefaultConfig())

	signals := s.AnalyzeDexTrades(map[string][]models.DexTrade{
		"ethereum": {
			// покупка USDC — не «лонг по USDC»
			{TokenBoughtSymbol: "USDC", TokenSoldSymbol: "WETH", TradeValueUSD: 100000},
			{TokenBoughtSymbol: "WBTC", TokenSoldSymbol: "USDT", TradeValueUSD: 50000},
		},
	})

	assert.Empty(t, signals)
}

func TestAnalyzeDexTrades_BothLegsCount(t *testing.T) {
	s := New(DefaultConfig())

	// один трейд даёт buy по PEPE и sell по MOG
	signals := s.AnalyzeDexTrades(map[string][]models.DexTrade{
		"ethereum": {
			{TokenBoughtSymbol: "PEPE", TokenSoldSymbol: "MOG", TradeValueUSD: 9000},
		},
	})

	require.Len(t, signals, 2)
	bySymbol := map[string]models.FlowSignal{}
	for _, sig := range signals {
		bySymbol[sig.Symbol] = sig
	}
	assert.Equal(t, models.DirectionLong, bySymbol["PEPE"].Direction)
	assert.Equal(t, models.DirectionShort, bySymbol["MOG"].Direction)
	assert.Equal(t, float64(9000), bySymbol["PEPE"].NetFlowUSD)
	assert.Equal(t, float64(-9000), bySymbol["MOG"].NetFlowUSD)
}

func TestAnalyzeDexTrades_VolumeFloor(t *testing.T) {
	s := New(DefaultConfig())

	signals := s.AnalyzeDexTrades(map[string][]models.DexTrade{
		"base": {
			{TokenBoughtSymbol: "TINY", TokenSoldSymbol: "USDC", TradeValueUSD: 4999},
		},
	})

	assert.Empty(t, signals)
}

func TestAnalyzeDexTrades_BalancedRatioSkipped(t *testing.T) {
	s := New(DefaultConfig())

	// ratio ровно 0.5 — нет перекоса, сигнала нет
	signals := s.AnalyzeDexTrades(map[string][]models.DexTrade{
		"base": {
			{TokenBoughtSymbol: "MID", TokenSoldSymbol: "USDC", TradeValueUSD: 6000},
			{TokenBoughtSymbol: "USDC", TokenSoldSymbol: "MID", TradeValueUSD: 6000},
		},
	})

	assert.Empty(t, signals)
}
