package turn

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

// MemoryRepository in-memory реализация репозитория турнов
// Взаимозаменяема с Repository, используется как легковесный backend
// (database.backend = "memory") и как фикстура в тестах
type MemoryRepository struct {
	mu     sync.Mutex
	turns  map[int64]*domain.Turn
	nextID int64
}

// NewMemoryRepository создает пустое in-memory хранилище турнов
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		turns:  make(map[int64]*domain.Turn),
		nextID: 1,
	}
}

// Create создает новый турн
func (r *MemoryRepository) Create(_ context.Context, t *domain.Turn) (*domain.Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()

	stored := cloneTurn(t)
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.nextID++

	r.turns[stored.ID] = stored

	return cloneTurn(stored), nil
}

// GetByID получает турн по ID
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*domain.Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.turns[id]
	if !ok {
		return nil, ErrTurnNotFound
	}

	return cloneTurn(stored), nil
}

// GetWithFilter получает турны с фильтрацией, в порядке (дата, время)
func (r *MemoryRepository) GetWithFilter(_ context.Context, filter domain.TurnsFilter) ([]*domain.Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Turn, 0)
	for _, t := range r.turns {
		if filter.ClientID != nil && t.ClientID != *filter.ClientID {
			continue
		}
		if filter.Date != nil && !sameDay(t.Date, *filter.Date) {
			continue
		}
		if filter.StartTime != nil && t.StartTime != *filter.StartTime {
			continue
		}
		if filter.Status != nil {
			if t.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeCancelled && t.Status == domain.StatusCancelled {
			continue
		}

		result = append(result, cloneTurn(t))
	}

	sortTurns(result)

	return result, nil
}

// SetConfirmed переводит турн в статус confirmed и записывает администратора
func (r *MemoryRepository) SetConfirmed(_ context.Context, id int64, adminID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.turns[id]
	if !ok {
		return ErrTurnNotFound
	}

	stored.Status = domain.StatusConfirmed
	stored.AdminID = &adminID
	stored.UpdatedAt = time.Now()

	return nil
}

// SetCancelled переводит турн в статус cancelled и фиксирует время отмены
func (r *MemoryRepository) SetCancelled(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.turns[id]
	if !ok {
		return ErrTurnNotFound
	}

	now := time.Now()
	stored.Status = domain.StatusCancelled
	stored.CancelledAt = &now
	stored.UpdatedAt = now

	return nil
}

// DeleteCancelledBefore удаляет отмененные турны с датой раньше cutoff
func (r *MemoryRepository) DeleteCancelledBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, t := range r.turns {
		if t.Status == domain.StatusCancelled && t.Date.Before(cutoff) {
			delete(r.turns, id)
			removed++
		}
	}

	return removed, nil
}

// GetStats возвращает количество турнов по статусам
func (r *MemoryRepository) GetStats(_ context.Context) (*domain.TurnStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.TurnStats{}
	for _, t := range r.turns {
		stats.Total++
		switch t.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusConfirmed:
			stats.Confirmed++
		case domain.StatusCancelled:
			stats.Cancelled++
		}
	}

	return stats, nil
}

// cloneTurn делает глубокую копию турна, чтобы хранилище не делило память с вызывающим кодом
func cloneTurn(t *domain.Turn) *domain.Turn {
	clone := *t
	if t.AdminID != nil {
		v := *t.AdminID
		clone.AdminID = &v
	}
	if t.Notes != nil {
		v := *t.Notes
		clone.Notes = &v
	}
	if t.CancelledAt != nil {
		v := *t.CancelledAt
		clone.CancelledAt = &v
	}
	return &clone
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// sortTurns сортирует турны по (дата, время начала) по возрастанию
func sortTurns(turns []*domain.Turn) {
	sort.Slice(turns, func(i, j int) bool {
		if !sameDay(turns[i].Date, turns[j].Date) {
			return turns[i].Date.Before(turns[j].Date)
		}
		return turns[i].StartTime.IsBefore(turns[j].StartTime)
	})
}
