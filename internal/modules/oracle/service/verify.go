package service

import (
	"context"
	"time"

	"alpha_oracle/internal/helper"
	"alpha_oracle/internal/ledger"
	"alpha_oracle/internal/models"
	pythsvc "alpha_oracle/internal/modules/pyth/service"
	"alpha_oracle/internal/notify"
	"alpha_oracle/internal/verifier"
	"alpha_oracle/pkg/logger"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

// Verifier прогоняет журнал: каждый истёкший активный прогноз получает
// исход по референсной цене, без цены — уходит в ручную проверку.
// Терминальные записи пропускаются, повторный прогон ничего не меняет.
type Verifier struct {
	pyth  *pythsvc.Client
	store *ledger.Store
	n     notify.Notifier
}

func NewVerifier(pyth *pythsvc.Client, store *ledger.Store, n notify.Notifier) *Verifier {
	return &Verifier{pyth: pyth, store: store, n: n}
}

// VerifyExpired возвращает число записей, сменивших статус.
// Весь батч пишется одним сохранением — единица атомарности это файл.
func (v *Verifier) VerifyExpired(ctx context.Context) (int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "verify_expired")
	defer span.Finish()

	preds, err := v.store.List(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "ledger list")
	}

	now := time.Now()
	changed := make([]*models.Prediction, 0)

	for _, p := range preds {
		if p.Status != models.StatusActive || !p.Expired(now) {
			continue
		}

		var pricePtr *float64
		price, err := v.pyth.Price(ctx, p.Asset)
		switch {
		case err == nil:
			pricePtr = &price
		case errors.Is(err, pythsvc.ErrNoFeed):
			logger.Warn("no feed for %s, manual verification", p.Asset)
		default:
			// сбой цены не блокирует остальные прогнозы
			logger.Error("price %s: %v", p.Asset, err)
		}

		if !verifier.Transition(p, pricePtr, now) {
			continue
		}
		changed = append(changed, p)

		switch p.Status {
		case models.StatusWon, models.StatusLost:
			emoji := "✅"
			if p.Status == models.StatusLost {
				emoji = "❌"
			}
			logger.Info("%s %s %s: entry=%.2f result=%.2f",
				p.Asset, p.Direction, p.Status,
				helper.PriceFromU64(p.EntryPrice),
				helper.PriceFromU64(p.ResultPrice))
			v.n.Sendf("%s %s %s: %s (entry %.2f, result %.2f)",
				emoji, p.Asset, p.Direction, p.Status,
				helper.PriceFromU64(p.EntryPrice),
				helper.PriceFromU64(p.ResultPrice))
		case models.StatusNeedsManualVerification:
			logger.Info("%s prediction needs manual verification (no price)", p.Asset)
		}
	}

	if err := v.store.UpdateBatch(ctx, changed); err != nil {
		return 0, errors.Wrap(err, "ledger update")
	}
	return len(changed), nil
}

// Stats — сводка журнала для отчётов.
func (v *Verifier) Stats(ctx context.Context) (ledger.Stats, error) {
	return v.store.Stats(ctx)
}
