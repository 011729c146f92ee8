package service

import (
	"math"
	"sort"
	"time"

	"alpha_oracle/internal/helper"
	"alpha_oracle/internal/models"
)

// AnalyzeNetflows нормализует netflow-записи по всем сетям в список сигналов.
// Записи без символа и с нулевым потоком отбрасываются молча — это не ошибка,
// просто нет сигнала.
func (s *Scanner) AnalyzeNetflows(all map[string][]models.NetflowRecord) []models.FlowSignal {
	now := time.Now().UTC()
	signals := make([]models.FlowSignal, 0)

	for chain, flows := range all {
		for _, rec := range flows {
			symbol := helper.NormSymbol(rec.TokenSymbol)
			if symbol == "" {
				continue
			}

			// 24h — основной сигнал, 1h — фолбэк
			primary := rec.NetFlow24hUSD
			if primary == 0 {
				primary = rec.NetFlow1hUSD
			}
			if primary == 0 {
				continue
			}

			flowPct := 0.0
			if rec.MarketCapUSD > 0 {
				flowPct = math.Abs(primary) / rec.MarketCapUSD * 100
			}

			if math.Abs(primary) <= s.cfg.MinFlowUSD && flowPct <= s.cfg.MinFlowPctMcap {
				continue
			}

			direction := models.DirectionShort
			if primary > 0 {
				direction = models.DirectionLong
			}

			// Аддитивная эвристика, не калиброванная вероятность:
			// размер потока + число трейдеров + согласие окон по знаку.
			conf := 0.3
			if math.Abs(primary) > s.cfg.LargeFlowUSD {
				conf += 0.2
			}
			if math.Abs(primary) > s.cfg.HugeFlowUSD {
				conf += 0.2
			}
			if rec.TraderCount >= s.cfg.MinTraders {
				conf += 0.1
			}
			if rec.NetFlow1hUSD != 0 && (rec.NetFlow1hUSD > 0) == (rec.NetFlow24hUSD > 0) {
				conf += 0.1
			}
			if rec.NetFlow7dUSD != 0 && (rec.NetFlow7dUSD > 0) == (rec.NetFlow24hUSD > 0) {
				conf += 0.1
			}

			signals = append(signals, models.FlowSignal{
				Symbol:       symbol,
				Chain:        chain,
				Direction:    direction,
				NetFlowUSD:   primary,
				NetFlow1hUSD: rec.NetFlow1hUSD,
				NetFlow7dUSD: rec.NetFlow7dUSD,
				MarketCapUSD: rec.MarketCapUSD,
				FlowPctMcap:  flowPct,
				TraderCount:  rec.TraderCount,
				Confidence:   clamp01(conf),
				Source:       models.SourceNetflow,
				Timestamp:    now,
			})
		}
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return math.Abs(signals[i].NetFlowUSD) > math.Abs(signals[j].NetFlowUSD)
	})
	return signals
}
