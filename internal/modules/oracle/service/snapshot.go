package service

import (
	"os"
	"path/filepath"
	"time"

	"alpha_oracle/internal/models"

	"github.com/bytedance/sonic"
)

// writeSnapshot сохраняет топ слитых сигналов плюс сырые счётчики —
// то, что читает внешняя отчётность. Формат полей — часть контракта.
func (r *Runner) writeSnapshot(netflow, dex []models.FlowSignal, merged []models.MergedSignal) error {
	topN := r.cfg.Scanner.TopN
	if topN <= 0 {
		topN = 20
	}
	top := merged
	if len(top) > topN {
		top = top[:topN]
	}

	snap := models.SignalSnapshot{
		Timestamp:     time.Now().UTC(),
		Source:        "nansen_smart_money",
		ChainsScanned: r.cfg.Chains,
		Signals:       top,
		RawStats: models.SnapshotStats{
			NetflowSignals: len(netflow),
			DexSignals:     len(dex),
			MergedTotal:    len(merged),
		},
	}

	b, err := sonic.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return err
	}

	path := r.cfg.Oracle.SnapshotPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
