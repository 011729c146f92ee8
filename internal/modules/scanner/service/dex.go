package service

import (
	"math"
	"sort"
	"time"

	"alpha_oracle/internal/helper"
	"alpha_oracle/internal/models"
)

// Стейблы и обёртки не считаем направленной целью: покупка USDC —
// это не «сигнал на лонг USDC». Их ноги трейда просто пропускаются.
var stables = map[string]struct{}{
	"USDC": {}, "USDT": {}, "DAI": {}, "BUSD": {},
	"WETH": {}, "WBTC": {}, "WBNB": {}, "WSOL": {},
}

type tokenAgg struct {
	symbol string
	chain  string
	buys   float64
	sells  float64
	trades int
}

// AnalyzeDexTrades агрегирует DEX-трейды по (symbol, chain) и превращает
// дисбаланс покупок/продаж в сигналы. Один трейд может внести вклад в два
// ключа — по ноге покупки и по ноге продажи.
func (s *Scanner) AnalyzeDexTrades(all map[string][]models.DexTrade) []models.FlowSignal {
	now := time.Now().UTC()
	agg := make(map[string]*tokenAgg)

	bump := func(symbol, chain string, usd float64, isBuy bool) {
		key := symbol + "_" + chain
		a, ok := agg[key]
		if !ok {
			a = &tokenAgg{symbol: symbol, chain: chain}
			agg[key] = a
		}
		if isBuy {
			a.buys += usd
		} else {
			a.sells += usd
		}
		a.trades++
	}

	for chain, trades := range all {
		for _, tr := range trades {
			if tr.TradeValueUSD == 0 {
				continue
			}

			bought := helper.NormSymbol(tr.TokenBoughtSymbol)
			sold := helper.NormSymbol(tr.TokenSoldSymbol)

			if bought != "" {
				if _, stable := stables[bought]; !stable {
					bump(bought, chain, tr.TradeValueUSD, true)
				}
			}
			if sold != "" {
				if _, stable := stables[sold]; !stable {
					bump(sold, chain, tr.TradeValueUSD, false)
				}
			}
		}
	}

	signals := make([]models.FlowSignal, 0, len(agg))
	for _, a := range agg {
		total := a.buys + a.sells
		if total < s.cfg.MinVolumeUSD {
			continue // неликвид / шум
		}

		buyRatio := a.buys / total
		if buyRatio <= s.cfg.BuyRatioHigh && buyRatio >= s.cfg.BuyRatioLow {
			continue // нет осмысленного перекоса
		}

		net := a.buys - a.sells
		direction := models.DirectionShort
		if net > 0 {
			direction = models.DirectionLong
		}

		confidence := math.Min(math.Abs(buyRatio-0.5)*2+0.2, 1.0)
		if a.trades >= 3 {
			confidence = math.Min(confidence+0.1, 1.0)
		}

		signals = append(signals, models.FlowSignal{
			Symbol:         a.symbol,
			Chain:          a.chain,
			Direction:      direction,
			NetFlowUSD:     net,
			BuyRatio:       buyRatio,
			TotalVolumeUSD: total,
			TradeCount:     a.trades,
			Confidence:     confidence,
			Source:         models.SourceDexTrades,
			Timestamp:      now,
		})
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return math.Abs(signals[i].NetFlowUSD) > math.Abs(signals[j].NetFlowUSD)
	})
	return signals
}
