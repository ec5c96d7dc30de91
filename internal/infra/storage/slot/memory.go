package slot

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

// MemoryRepository in-memory реализация репозитория слотов
type MemoryRepository struct {
	mu     sync.Mutex
	slots  map[int64]*domain.AvailabilitySlot
	nextID int64
}

// NewMemoryRepository создает пустое in-memory хранилище слотов
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		slots:  make(map[int64]*domain.AvailabilitySlot),
		nextID: 1,
	}
}

// Create создает новый слот доступности
func (r *MemoryRepository) Create(_ context.Context, s *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()

	stored := cloneSlot(s)
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.nextID++

	r.slots[stored.ID] = stored

	return cloneSlot(stored), nil
}

// GetByID получает слот по ID
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*domain.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}

	return cloneSlot(stored), nil
}

// GetWithFilter получает слоты с фильтрацией, в порядке (дата, время, id)
func (r *MemoryRepository) GetWithFilter(_ context.Context, filter domain.SlotsFilter) ([]*domain.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.AvailabilitySlot, 0)
	for _, s := range r.slots {
		if filter.Date != nil && !s.MatchesDate(*filter.Date) {
			continue
		}
		if filter.Zone != nil && s.Zone != *filter.Zone {
			continue
		}
		if filter.ServiceType != nil && s.ServiceType != *filter.ServiceType {
			continue
		}
		if filter.FreeOnly && !s.Available {
			continue
		}

		result = append(result, cloneSlot(s))
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.MatchesDate(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime.IsBefore(b.StartTime)
		}
		return a.ID < b.ID
	})

	return result, nil
}

// Update обновляет дату, временной диапазон, зону и тип услуги слота
func (r *MemoryRepository) Update(_ context.Context, s *domain.AvailabilitySlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.slots[s.ID]
	if !ok {
		return ErrSlotNotFound
	}

	stored.Date = s.Date
	stored.StartTime = s.StartTime
	stored.EndTime = s.EndTime
	stored.Zone = s.Zone
	stored.ServiceType = s.ServiceType
	stored.UpdatedAt = time.Now()

	return nil
}

// SetAvailable проставляет признак свободности слота
func (r *MemoryRepository) SetAvailable(_ context.Context, id int64, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.slots[id]
	if !ok {
		return ErrSlotNotFound
	}

	stored.Available = available
	stored.UpdatedAt = time.Now()

	return nil
}

// Delete удаляет слот. Занятый слот удалить нельзя
func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	if !stored.Available {
		return ErrSlotOccupied
	}

	delete(r.slots, id)

	return nil
}

func cloneSlot(s *domain.AvailabilitySlot) *domain.AvailabilitySlot {
	clone := *s
	return &clone
}
