package submitter

import (
	"context"
	"fmt"
	"time"

	"alpha_oracle/internal/models"
	"alpha_oracle/pkg/logger"
)

// Submitter — точка расширения для ончейн-публикации прогноза.
// Реальной отправки в репозитории нет: подпись/броадкаст/подтверждение —
// забота внешнего слоя.
type Submitter interface {
	Submit(ctx context.Context, p *models.Prediction) (string, error)
}

// Log пишет прогноз только в лог и возвращает локальный receipt id.
type Log struct {
	programID string
}

func NewLog(programID string) *Log {
	return &Log{programID: programID}
}

func (l *Log) Submit(ctx context.Context, p *models.Prediction) (string, error) {
	receipt := fmt.Sprintf("local_%d_%d", p.LocalID, time.Now().Unix())
	logger.Info("prediction submitted locally: %s %s id=%d program=%s receipt=%s",
		p.Asset, p.Direction, p.LocalID, l.programID, receipt)
	return receipt, nil
}
