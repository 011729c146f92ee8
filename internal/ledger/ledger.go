package ledger

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"alpha_oracle/internal/models"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// Store — append-mostly журнал прогнозов в одном JSON-файле.
// Единственный владелец записей: всё снаружи получает копии.
// Сохранение перезаписывает файл целиком — единица консистентности это батч.
type Store struct {
	path string

	mu     sync.Mutex
	preds  []*models.Prediction
	nextID uint64
	loaded bool
}

const defaultPath = "data/predictions.json"

func NewStore(path string) *Store {
	if path == "" {
		path = defaultPath
	}
	return &Store{path: path}
}

// Append присваивает следующий local_id и дописывает прогноз.
// Идентификаторы монотонные и не переиспользуются.
func (s *Store) Append(ctx context.Context, p *models.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}
	p.LocalID = s.nextID
	s.nextID++
	s.preds = append(s.preds, clonePrediction(p))
	return s.saveLocked()
}

// List отдаёт копии всех записей в порядке создания.
func (s *Store) List(ctx context.Context) ([]*models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	out := make([]*models.Prediction, 0, len(s.preds))
	for _, p := range s.preds {
		out = append(out, clonePrediction(p))
	}
	return out, nil
}

// UpdateBatch применяет изменённые записи по local_id и сохраняет файл один раз.
// Неизвестные id — ошибка: ledger ничего не создаёт через update.
func (s *Store) UpdateBatch(ctx context.Context, changed []*models.Prediction) error {
	if len(changed) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}

	byID := make(map[uint64]int, len(s.preds))
	for i, p := range s.preds {
		byID[p.LocalID] = i
	}
	for _, p := range changed {
		i, ok := byID[p.LocalID]
		if !ok {
			return errors.Errorf("ledger: unknown prediction local_id=%d", p.LocalID)
		}
		s.preds[i] = clonePrediction(p)
	}
	return s.saveLocked()
}

type Stats struct {
	Total   int     `json:"total_predictions"`
	Active  int     `json:"active"`
	Won     int     `json:"won"`
	Lost    int     `json:"lost"`
	Pending int     `json:"pending_verification"`
	WinRate float64 `json:"win_rate"`
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	preds, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Total: len(preds)}
	for _, p := range preds {
		switch p.Status {
		case models.StatusActive:
			st.Active++
		case models.StatusWon:
			st.Won++
		case models.StatusLost:
			st.Lost++
		case models.StatusNeedsVerification, models.StatusNeedsManualVerification:
			st.Pending++
		}
	}
	if st.Won+st.Lost > 0 {
		st.WinRate = float64(st.Won) / float64(st.Won+st.Lost) * 100
	}
	return st, nil
}

// ---- storage format ----

type snapshot struct {
	UpdatedAt   time.Time            `json:"updated_at"`
	NextID      uint64               `json:"next_id"`
	Predictions []*models.Prediction `json:"predictions"`
}

func (s *Store) loadLocked() error {
	if s.loaded {
		return nil
	}

	// local_id начинается с 1, ноль оставляем как "не присвоен"
	s.nextID = 1

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return errors.Wrapf(err, "read %s", s.path)
	}

	var snap snapshot
	if err := sonic.Unmarshal(b, &snap); err != nil {
		// Нечитаемый журнал фатален для прохода, по-записьных ошибок тут нет.
		return errors.Wrapf(err, "decode %s", s.path)
	}

	s.preds = make([]*models.Prediction, 0, len(snap.Predictions))
	if snap.NextID > s.nextID {
		s.nextID = snap.NextID
	}
	for _, p := range snap.Predictions {
		if p == nil {
			continue
		}
		s.preds = append(s.preds, clonePrediction(p))
		if p.LocalID >= s.nextID {
			s.nextID = p.LocalID + 1
		}
	}

	s.loaded = true
	return nil
}

func (s *Store) saveLocked() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	preds := make([]*models.Prediction, 0, len(s.preds))
	for _, p := range s.preds {
		preds = append(preds, clonePrediction(p))
	}

	snap := snapshot{
		UpdatedAt:   time.Now(),
		NextID:      s.nextID,
		Predictions: preds,
	}

	b, err := sonic.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path) // атомарно
}

// clone чтобы никто извне не мутировал shared ptr
func clonePrediction(in *models.Prediction) *models.Prediction {
	if in == nil {
		return nil
	}
	b, _ := sonic.Marshal(in)
	var out models.Prediction
	_ = sonic.Unmarshal(b, &out)
	return &out
}
