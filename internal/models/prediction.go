package models

import "time"

type PredictionStatus string

const (
	StatusActive PredictionStatus = "active"
	StatusWon    PredictionStatus = "won"
	StatusLost   PredictionStatus = "lost"
	// Цена недоступна — нужен оператор с маппингом фида, ретраев нет.
	StatusNeedsManualVerification PredictionStatus = "needs_manual_verification"
	// Легаси-статус из старых журналов. Новый код его не выставляет,
	// при загрузке считается терминальным.
	StatusNeedsVerification PredictionStatus = "needs_verification"
)

// Terminal: всё, кроме active, — конечное состояние.
func (s PredictionStatus) Terminal() bool { return s != StatusActive }

// ActionableSignal — входная запись из внешней торговой системы,
// по которой создаётся прогноз.
type ActionableSignal struct {
	Symbol          string  `json:"symbol"`
	Signal          int     `json:"signal"` // 1 = LONG, -1 = SHORT
	Price           float64 `json:"price"`
	TakeProfitPrice float64 `json:"take_profit_price,omitempty"`
	StopLossPrice   float64 `json:"stop_loss_price,omitempty"`
	Strategy        string  `json:"strategy,omitempty"`
	ValidSetup      bool    `json:"valid_setup,omitempty"`
}

// SignalsFile — формат current_signals.json.
type SignalsFile struct {
	AllSignals []ActionableSignal `json:"all_signals"`
	Actionable []ActionableSignal `json:"actionable"`
}

// Prediction — один прогноз. Цены в micro-units (6 знаков, как USDC).
// Записями владеет только ledger.Store.
type Prediction struct {
	LocalID        uint64           `json:"local_id"`
	Asset          string           `json:"asset"`
	Direction      Direction        `json:"direction"`
	EntryPrice     int64            `json:"entry_price"`
	TakeProfit     int64            `json:"take_profit"`
	StopLoss       int64            `json:"stop_loss"`
	TimeframeHours int              `json:"timeframe_hours"`
	CreatedAt      time.Time        `json:"created_at"`
	ExpiresAt      int64            `json:"expires_at"` // unix seconds
	Status         PredictionStatus `json:"status"`
	ResultPrice    int64            `json:"result_price,omitempty"`
	VerifiedAt     *time.Time       `json:"verified_at,omitempty"`

	OriginalSignal *ActionableSignal `json:"original_signal,omitempty"`
}

func (p *Prediction) Expired(now time.Time) bool {
	return now.Unix() >= p.ExpiresAt
}
