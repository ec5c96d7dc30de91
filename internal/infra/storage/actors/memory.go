package actors

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

// MemoryRepository in-memory реализация репозитория клиентов и администраторов
type MemoryRepository struct {
	mu           sync.Mutex
	clients      map[int64]*domain.Client
	admins       map[int64]*domain.Administrator
	nextClientID int64
	nextAdminID  int64
}

// NewMemoryRepository создает пустое in-memory хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		clients:      make(map[int64]*domain.Client),
		admins:       make(map[int64]*domain.Administrator),
		nextClientID: 1,
		nextAdminID:  1,
	}
}

// CreateClient создает клиента
func (r *MemoryRepository) CreateClient(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *c
	stored.ID = r.nextClientID
	stored.CreatedAt = time.Now()
	r.nextClientID++

	r.clients[stored.ID] = &stored

	result := stored
	return &result, nil
}

// GetClientByID получает клиента по ID
func (r *MemoryRepository) GetClientByID(_ context.Context, id int64) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}

	result := *stored
	return &result, nil
}

// CreateAdmin создает администратора
func (r *MemoryRepository) CreateAdmin(_ context.Context, a *domain.Administrator) (*domain.Administrator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *a
	stored.ID = r.nextAdminID
	stored.CreatedAt = time.Now()
	r.nextAdminID++

	r.admins[stored.ID] = &stored

	result := stored
	return &result, nil
}

// GetAdminByID получает администратора по ID
func (r *MemoryRepository) GetAdminByID(_ context.Context, id int64) (*domain.Administrator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.admins[id]
	if !ok {
		return nil, ErrAdminNotFound
	}

	result := *stored
	return &result, nil
}

// ListClients получает всех клиентов, отсортированных по ID
func (r *MemoryRepository) ListClients(_ context.Context) ([]*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients := make([]*domain.Client, 0, len(r.clients))
	for _, stored := range r.clients {
		result := *stored
		clients = append(clients, &result)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })

	return clients, nil
}

// ListAdmins получает всех администраторов, отсортированных по ID
func (r *MemoryRepository) ListAdmins(_ context.Context) ([]*domain.Administrator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admins := make([]*domain.Administrator, 0, len(r.admins))
	for _, stored := range r.admins {
		result := *stored
		admins = append(admins, &result)
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].ID < admins[j].ID })

	return admins, nil
}
