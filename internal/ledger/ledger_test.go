package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"alpha_oracle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "predictions.json"))
}

func activePred(asset string) *models.Prediction {
	return &models.Prediction{
		Asset:          asset,
		Direction:      models.DirectionLong,
		EntryPrice:     100_000000,
		TakeProfit:     105_000000,
		StopLoss:       95_000000,
		TimeframeHours: 24,
		CreatedAt:      time.Now().UTC(),
		ExpiresAt:      time.Now().Add(24 * time.Hour).Unix(),
		Status:         models.StatusActive,
	}
}

func TestStore_AppendAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, asset := range []string{"BTC", "ETH", "SOL"} {
		p := activePred(asset)
		require.NoError(t, s.Append(ctx, p))
		assert.Equal(t, uint64(i+1), p.LocalID)
	}
}

func TestStore_IDsNeverReused(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := activePred("BTC")
	require.NoError(t, s.Append(ctx, first))

	done := activePred("BTC")
	done.LocalID = first.LocalID
	done.Status = models.StatusWon
	require.NoError(t, s.UpdateBatch(ctx, []*models.Prediction{done}))

	// даже после закрытия записи id идёт дальше, а не переиспользуется
	second := activePred("ETH")
	require.NoError(t, s.Append(ctx, second))
	assert.Equal(t, first.LocalID+1, second.LocalID)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.json")
	ctx := context.Background()

	s := NewStore(path)
	require.NoError(t, s.Append(ctx, activePred("BTC")))
	require.NoError(t, s.Append(ctx, activePred("ETH")))

	reopened := NewStore(path)
	preds, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "BTC", preds[0].Asset)
	assert.Equal(t, "ETH", preds[1].Asset)

	// счётчик восстановлен из файла
	third := activePred("SOL")
	require.NoError(t, reopened.Append(ctx, third))
	assert.Equal(t, uint64(3), third.LocalID)
}

func TestStore_ListReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, activePred("BTC")))

	preds, err := s.List(ctx)
	require.NoError(t, err)
	preds[0].Status = models.StatusLost

	again, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, again[0].Status)
}

func TestStore_UpdateBatchUnknownID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, activePred("BTC")))

	ghost := activePred("ETH")
	ghost.LocalID = 999
	err := s.UpdateBatch(ctx, []*models.Prediction{ghost})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prediction")
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	statuses := []models.PredictionStatus{
		models.StatusActive,
		models.StatusWon,
		models.StatusWon,
		models.StatusLost,
		models.StatusNeedsManualVerification,
	}
	for _, st := range statuses {
		p := activePred("X")
		require.NoError(t, s.Append(ctx, p))
		if st != models.StatusActive {
			p.Status = st
			require.NoError(t, s.UpdateBatch(ctx, []*models.Prediction{p}))
		}
	}

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 1, st.Active)
	assert.Equal(t, 2, st.Won)
	assert.Equal(t, 1, st.Lost)
	assert.Equal(t, 1, st.Pending)
	assert.InDelta(t, 66.666, st.WinRate, 0.01)
}

func TestStore_EmptyPathUsesDefault(t *testing.T) {
	s := NewStore("")
	assert.Equal(t, defaultPath, s.path)
}
