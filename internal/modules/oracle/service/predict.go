package service

import (
	"context"
	"os"
	"time"

	"alpha_oracle/internal/helper"
	"alpha_oracle/internal/models"
	"alpha_oracle/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// ProcessSignals читает actionable-сигналы внешней торговой системы
// и заводит по ним прогнозы в журнале. Возвращает receipt id сабмиттера.
func (r *Runner) ProcessSignals(ctx context.Context) ([]string, error) {
	b, err := os.ReadFile(r.cfg.Oracle.SignalsPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no signals file at %s", r.cfg.Oracle.SignalsPath)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read %s", r.cfg.Oracle.SignalsPath)
	}

	var sf models.SignalsFile
	if err := sonic.Unmarshal(b, &sf); err != nil {
		return nil, errors.Wrapf(err, "decode %s", r.cfg.Oracle.SignalsPath)
	}

	if len(sf.Actionable) == 0 {
		valid := 0
		for _, s := range sf.AllSignals {
			if s.ValidSetup {
				valid++
			}
		}
		logger.Info("no actionable signals (valid setups: %d)", valid)
		return nil, nil
	}

	logger.Info("found %d actionable signals", len(sf.Actionable))

	now := time.Now()
	receipts := make([]string, 0, len(sf.Actionable))
	for i := range sf.Actionable {
		sig := sf.Actionable[i]
		pred := r.buildPrediction(&sig, now)

		if err := r.store.Append(ctx, pred); err != nil {
			return receipts, errors.Wrap(err, "ledger append")
		}

		receipt, err := r.sub.Submit(ctx, pred)
		if err != nil {
			logger.Error("submit %s: %v", pred.Asset, err)
			continue
		}
		receipts = append(receipts, receipt)

		r.n.Sendf("📝 %s %s | entry %.2f tp %.2f sl %.2f | id=%d",
			pred.Asset, pred.Direction,
			helper.PriceFromU64(pred.EntryPrice),
			helper.PriceFromU64(pred.TakeProfit),
			helper.PriceFromU64(pred.StopLoss),
			pred.LocalID)
	}
	return receipts, nil
}

// buildPrediction переводит сигнал в прогноз. Незаданные TP/SL — дефолтные
// проценты от entry, с учётом направления (у SHORT тейк ниже входа).
func (r *Runner) buildPrediction(sig *models.ActionableSignal, now time.Time) *models.Prediction {
	direction := models.DirectionShort
	if sig.Signal == 1 {
		direction = models.DirectionLong
	}

	tpPct := r.cfg.Oracle.DefaultTPPct / 100
	slPct := r.cfg.Oracle.DefaultSLPct / 100

	tp := sig.TakeProfitPrice
	if tp == 0 {
		if direction == models.DirectionLong {
			tp = sig.Price * (1 + tpPct)
		} else {
			tp = sig.Price * (1 - tpPct)
		}
	}
	sl := sig.StopLossPrice
	if sl == 0 {
		if direction == models.DirectionLong {
			sl = sig.Price * (1 - slPct)
		} else {
			sl = sig.Price * (1 + slPct)
		}
	}

	hours := r.cfg.Oracle.TimeframeHours
	if hours <= 0 {
		hours = 24
	}

	return &models.Prediction{
		Asset:          helper.NormSymbol(sig.Symbol),
		Direction:      direction,
		EntryPrice:     helper.PriceToU64(sig.Price),
		TakeProfit:     helper.PriceToU64(tp),
		StopLoss:       helper.PriceToU64(sl),
		TimeframeHours: hours,
		CreatedAt:      now.UTC(),
		ExpiresAt:      now.Unix() + int64(hours)*3600,
		Status:         models.StatusActive,
		OriginalSignal: sig,
	}
}
