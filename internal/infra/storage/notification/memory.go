package notification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

// MemoryRepository in-memory реализация репозитория уведомлений
type MemoryRepository struct {
	mu            sync.Mutex
	notifications map[int64]*domain.Notification
	nextID        int64
}

// NewMemoryRepository создает пустое in-memory хранилище уведомлений
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		notifications: make(map[int64]*domain.Notification),
		nextID:        1,
	}
}

// Create создает запись уведомления
func (r *MemoryRepository) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneNotification(n)
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.nextID++

	r.notifications[stored.ID] = stored

	return cloneNotification(stored), nil
}

// GetByID получает уведомление по ID
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.notifications[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}

	return cloneNotification(stored), nil
}

// GetWithFilter получает уведомления с фильтрацией, в порядке создания
func (r *MemoryRepository) GetWithFilter(_ context.Context, filter domain.NotificationsFilter) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Notification, 0)
	for _, n := range r.notifications {
		if filter.TurnID != nil && n.TurnID != *filter.TurnID {
			continue
		}
		if filter.Kind != nil && n.Kind != *filter.Kind {
			continue
		}
		if filter.PendingOnly && n.Sent {
			continue
		}

		result = append(result, cloneNotification(n))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// MarkSent помечает уведомление отправленным
func (r *MemoryRepository) MarkSent(_ context.Context, id int64, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.notifications[id]
	if !ok {
		return ErrNotificationNotFound
	}

	stored.Sent = true
	stored.SentAt = &sentAt

	return nil
}

// DeleteSentBefore удаляет отправленные уведомления старше cutoff
func (r *MemoryRepository) DeleteSentBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, n := range r.notifications {
		if n.Sent && n.SentAt != nil && n.SentAt.Before(cutoff) {
			delete(r.notifications, id)
			removed++
		}
	}

	return removed, nil
}

// GetStats возвращает количество уведомлений по типам и статусу отправки
func (r *MemoryRepository) GetStats(_ context.Context) (*domain.NotificationStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.NotificationStats{}
	for _, n := range r.notifications {
		stats.Total++
		if n.Sent {
			stats.Sent++
		} else {
			stats.Pending++
		}

		switch n.Kind {
		case domain.KindConfirmation:
			stats.Confirmations++
		case domain.KindAlert:
			stats.Alerts++
		case domain.KindReminder:
			stats.Reminders++
		}
	}

	return stats, nil
}

func cloneNotification(n *domain.Notification) *domain.Notification {
	clone := *n
	if n.SentAt != nil {
		v := *n.SentAt
		clone.SentAt = &v
	}
	return &clone
}
