package verifier

import (
	"time"

	"alpha_oracle/internal/helper"
	"alpha_oracle/internal/models"
)

// Outcome сравнивает истёкший прогноз с референсной ценой.
//
// Метрика намеренно мягкая: LONG, который просто ушёл выше entry и не
// дошёл до TP, всё равно считается won. Строгое «только TP/SL» тут не так.
func Outcome(p *models.Prediction, current float64) models.PredictionStatus {
	entry := helper.PriceFromU64(p.EntryPrice)
	tp := helper.PriceFromU64(p.TakeProfit)
	sl := helper.PriceFromU64(p.StopLoss)

	if p.Direction == models.DirectionLong {
		switch {
		case current >= tp:
			return models.StatusWon
		case current <= sl:
			return models.StatusLost
		case current > entry:
			return models.StatusWon
		default:
			return models.StatusLost
		}
	}

	// SHORT — зеркально
	switch {
	case current <= tp:
		return models.StatusWon
	case current >= sl:
		return models.StatusLost
	case current < entry:
		return models.StatusWon
	default:
		return models.StatusLost
	}
}

// Transition — единственная точка смены статуса прогноза.
// price == nil означает «референсная цена недоступна» — такой прогноз
// уходит оператору, ретраев по дизайну нет.
// Терминальные записи не трогаем: повторный прогон ничего не меняет.
func Transition(p *models.Prediction, price *float64, now time.Time) bool {
	if p.Status != models.StatusActive {
		return false
	}
	if !p.Expired(now) {
		return false
	}

	if price == nil {
		p.Status = models.StatusNeedsManualVerification
		return true
	}

	p.Status = Outcome(p, *price)
	p.ResultPrice = helper.PriceToU64(*price)
	t := now.UTC()
	p.VerifiedAt = &t
	return true
}
