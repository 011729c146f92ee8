package verifier

import (
	"testing"
	"time"

	"alpha_oracle/internal/helper"
	"alpha_oracle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pred(dir models.Direction, entry, tp, sl float64) *models.Prediction {
	return &models.Prediction{
		Asset:      "TEST",
		Direction:  dir,
		EntryPrice: helper.PriceToU64(entry),
		TakeProfit: helper.PriceToU64(tp),
		StopLoss:   helper.PriceToU64(sl),
		Status:     models.StatusActive,
		ExpiresAt:  time.Now().Add(-time.Hour).Unix(),
	}
}

// Таблица намеренно мягкая: дрейф выше entry без касания TP — всё равно won.
func TestOutcome_LongTable(t *testing.T) {
	cases := []struct {
		name    string
		current float64
		want    models.PredictionStatus
	}{
		{"tp hit", 110, models.StatusWon},
		{"above tp", 125, models.StatusWon},
		{"sl hit", 90, models.StatusLost},
		{"below sl", 80, models.StatusLost},
		{"drift above entry", 105, models.StatusWon},
		{"at entry", 100, models.StatusLost},
		{"below entry", 95, models.StatusLost},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := pred(models.DirectionLong, 100, 110, 90)
			assert.Equal(t, tc.want, Outcome(p, tc.current))
		})
	}
}

func TestOutcome_ShortMirror(t *testing.T) {
	cases := []struct {
		name    string
		current float64
		want    models.PredictionStatus
	}{
		{"tp hit", 90, models.StatusWon},
		{"below tp", 85, models.StatusWon},
		{"sl breached", 112, models.StatusLost},
		{"at sl", 110, models.StatusLost},
		{"drift below entry", 95, models.StatusWon},
		{"at entry", 100, models.StatusLost},
		{"above entry", 104, models.StatusLost},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := pred(models.DirectionShort, 100, 90, 110)
			assert.Equal(t, tc.want, Outcome(p, tc.current))
		})
	}
}

func TestTransition_SetsResultAndTimestamp(t *testing.T) {
	p := pred(models.DirectionLong, 100, 110, 90)
	now := time.Now()
	price := 105.0

	require.True(t, Transition(p, &price, now))
	assert.Equal(t, models.StatusWon, p.Status)
	assert.Equal(t, helper.PriceToU64(105.0), p.ResultPrice)
	require.NotNil(t, p.VerifiedAt)
	assert.Equal(t, now.UTC(), *p.VerifiedAt)
}

func TestTransition_NoPriceGoesManual(t *testing.T) {
	p := pred(models.DirectionLong, 100, 110, 90)

	require.True(t, Transition(p, nil, time.Now()))
	assert.Equal(t, models.StatusNeedsManualVerification, p.Status)
	// result_price не трогаем
	assert.Equal(t, int64(0), p.ResultPrice)
	assert.Nil(t, p.VerifiedAt)
}

func TestTransition_TerminalIsIdempotent(t *testing.T) {
	p := pred(models.DirectionShort, 100, 90, 110)
	price := 80.0
	require.True(t, Transition(p, &price, time.Now()))
	require.Equal(t, models.StatusWon, p.Status)

	snapshot := *p
	other := 200.0
	// повторный прогон терминальной записи ничего не меняет
	assert.False(t, Transition(p, &other, time.Now()))
	assert.Equal(t, snapshot, *p)
}

func TestTransition_NotExpiredIsNoop(t *testing.T) {
	p := pred(models.DirectionLong, 100, 110, 90)
	p.ExpiresAt = time.Now().Add(time.Hour).Unix()
	price := 120.0

	assert.False(t, Transition(p, &price, time.Now()))
	assert.Equal(t, models.StatusActive, p.Status)
}
