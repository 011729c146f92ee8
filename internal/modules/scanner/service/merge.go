package service

import (
	"sort"

	"alpha_oracle/internal/models"
)

// Merge сводит сигналы двух источников в одну запись на символ.
// Порядок входа важен: сначала netflow, потом dex. Direction и Chain
// фиксируются по первому сигналу и не меняются даже при конфликте —
// при конфликте страдает только confidence.
func (s *Scanner) Merge(netflow, dex []models.FlowSignal) []models.MergedSignal {
	merged := make(map[string]*models.MergedSignal)
	order := make([]string, 0)

	for _, sig := range append(append([]models.FlowSignal{}, netflow...), dex...) {
		key := sig.Symbol
		if s.cfg.MergeByChain {
			key = sig.Symbol + "_" + sig.Chain
		}

		existing, ok := merged[key]
		if !ok {
			merged[key] = &models.MergedSignal{
				Symbol:     sig.Symbol,
				Chain:      sig.Chain,
				Direction:  sig.Direction,
				Confidence: sig.Confidence,
				Sources:    []models.SignalSource{sig.Source},
				NetFlowUSD: sig.NetFlowUSD,
				Timestamp:  sig.Timestamp,
			}
			order = append(order, key)
			continue
		}

		existing.Sources = append(existing.Sources, sig.Source)
		existing.NetFlowUSD += sig.NetFlowUSD // сумма, не среднее

		if existing.Direction == sig.Direction {
			// согласие источников — подтверждение
			existing.Confidence = clamp01(existing.Confidence + 0.2)
		} else {
			// конфликт режет доверие, но не в ноль — запись должна
			// остаться видимой
			existing.Confidence = existing.Confidence - 0.3
			if existing.Confidence < 0.1 {
				existing.Confidence = 0.1
			}
		}
	}

	out := make([]models.MergedSignal, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}
