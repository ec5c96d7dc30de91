package turns

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	"github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/actors"
	"github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/slot"
	"github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/turn"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// mockNotifier записывает отправленные уведомления
type mockNotifier struct {
	confirmations []int64
	cancellations []int64
	err           error
}

func (m *mockNotifier) SendTurnConfirmation(_ context.Context, t *domain.Turn) (*domain.Notification, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.confirmations = append(m.confirmations, t.ID)
	return &domain.Notification{TurnID: t.ID, Kind: domain.KindConfirmation}, nil
}

func (m *mockNotifier) SendTurnCancellation(_ context.Context, t *domain.Turn) (*domain.Notification, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.cancellations = append(m.cancellations, t.ID)
	return &domain.Notification{TurnID: t.ID, Kind: domain.KindAlert}, nil
}

type turnsFixture struct {
	svc       *Service
	turnRepo  *turn.MemoryRepository
	slotRepo  *slot.MemoryRepository
	actorRepo *actors.MemoryRepository
	notifier  *mockNotifier
}

func newTurnsFixture(t *testing.T) *turnsFixture {
	t.Helper()

	f := &turnsFixture{
		turnRepo:  turn.NewMemoryRepository(),
		slotRepo:  slot.NewMemoryRepository(),
		actorRepo: actors.NewMemoryRepository(),
		notifier:  &mockNotifier{},
	}
	f.svc = NewService(f.turnRepo, f.slotRepo, f.actorRepo, f.notifier, nopLogger{})
	return f
}

func (f *turnsFixture) addClient(t *testing.T) *domain.Client {
	t.Helper()
	client, err := f.actorRepo.CreateClient(context.Background(), &domain.Client{
		Name:  "Мария Лопес",
		Email: "maria@example.com",
	})
	require.NoError(t, err)
	return client
}

func (f *turnsFixture) addAdmin(t *testing.T) *domain.Administrator {
	t.Helper()
	admin, err := f.actorRepo.CreateAdmin(context.Background(), &domain.Administrator{
		Name:  "Администратор",
		Email: "admin@example.com",
	})
	require.NoError(t, err)
	return admin
}

func (f *turnsFixture) addSlot(t *testing.T, available bool) *domain.AvailabilitySlot {
	t.Helper()
	s, err := f.slotRepo.Create(context.Background(), &domain.AvailabilitySlot{
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "13:00",
		Zone:        "north",
		ServiceType: "standard_cleaning",
		Available:   available,
	})
	require.NoError(t, err)
	return s
}

func (f *turnsFixture) addTurn(t *testing.T, clientID, slotID int64, status domain.TurnStatus) *domain.Turn {
	t.Helper()
	created, err := f.turnRepo.Create(context.Background(), &domain.Turn{
		Date:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 120,
		ServiceType:     "standard_cleaning",
		Status:          domain.StatusPending,
		ClientID:        clientID,
		SlotID:          slotID,
	})
	require.NoError(t, err)

	switch status {
	case domain.StatusConfirmed:
		admin := f.addAdmin(t)
		require.NoError(t, f.turnRepo.SetConfirmed(context.Background(), created.ID, admin.ID))
	case domain.StatusCancelled:
		require.NoError(t, f.turnRepo.SetCancelled(context.Background(), created.ID))
	}

	refreshed, err := f.turnRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	return refreshed
}

func TestService_GetByID(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	created := f.addTurn(t, client.ID, 1, domain.StatusPending)

	resp, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "pending", resp.Status)
}

func TestService_GetByID_NotFound(t *testing.T) {
	f := newTurnsFixture(t)

	_, err := f.svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrTurnNotFound)
}

func TestService_ListByClient(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	other := f.addClient(t)

	f.addTurn(t, client.ID, 1, domain.StatusPending)
	f.addTurn(t, client.ID, 2, domain.StatusCancelled)
	f.addTurn(t, other.ID, 3, domain.StatusPending)

	// история клиента включает отмененные турны
	resp, err := f.svc.ListByClient(context.Background(), client.ID, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Turns, 2)

	status := "cancelled"
	resp, err = f.svc.ListByClient(context.Background(), client.ID, &status)
	require.NoError(t, err)
	require.Len(t, resp.Turns, 1)
	assert.Equal(t, "cancelled", resp.Turns[0].Status)
}

func TestService_ListByClient_Invalid(t *testing.T) {
	f := newTurnsFixture(t)

	_, err := f.svc.ListByClient(context.Background(), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := "done"
	_, err = f.svc.ListByClient(context.Background(), 1, &bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_List(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	f.addTurn(t, client.ID, 1, domain.StatusPending)
	f.addTurn(t, client.ID, 2, domain.StatusCancelled)

	// по умолчанию отмененные скрыты
	resp, err := f.svc.List(context.Background(), &models.ListTurnsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Turns, 1)

	resp, err = f.svc.List(context.Background(), &models.ListTurnsRequest{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, resp.Turns, 2)
}

func TestService_Confirm(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	admin := f.addAdmin(t)
	created := f.addTurn(t, client.ID, 1, domain.StatusPending)

	resp, err := f.svc.Confirm(context.Background(), created.ID, &models.ConfirmTurnRequest{AdminID: admin.ID})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	require.NotNil(t, resp.AdminID)
	assert.Equal(t, admin.ID, *resp.AdminID)
	assert.Equal(t, []int64{created.ID}, f.notifier.confirmations)

	stored, err := f.turnRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}

func TestService_Confirm_AdminNotFound(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	created := f.addTurn(t, client.ID, 1, domain.StatusPending)

	_, err := f.svc.Confirm(context.Background(), created.ID, &models.ConfirmTurnRequest{AdminID: 999})
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestService_Confirm_InvalidState(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	admin := f.addAdmin(t)

	for _, status := range []domain.TurnStatus{domain.StatusConfirmed, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			created := f.addTurn(t, client.ID, 1, status)

			_, err := f.svc.Confirm(context.Background(), created.ID, &models.ConfirmTurnRequest{AdminID: admin.ID})
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestService_Confirm_NotificationFailureDoesNotRollback(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	admin := f.addAdmin(t)
	created := f.addTurn(t, client.ID, 1, domain.StatusPending)

	f.notifier.err = assert.AnError

	resp, err := f.svc.Confirm(context.Background(), created.ID, &models.ConfirmTurnRequest{AdminID: admin.ID})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestService_Cancel_ByOwner(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	s := f.addSlot(t, false)
	created := f.addTurn(t, client.ID, s.ID, domain.StatusPending)

	resp, err := f.svc.Cancel(context.Background(), created.ID, &models.CancelTurnRequest{ActorID: client.ID})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []int64{created.ID}, f.notifier.cancellations)

	// слот освобожден для повторного бронирования
	released, err := f.slotRepo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.True(t, released.Available)
}

func TestService_Cancel_ByAdmin(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	admin := f.addAdmin(t)
	s := f.addSlot(t, false)
	created := f.addTurn(t, client.ID, s.ID, domain.StatusConfirmed)

	resp, err := f.svc.Cancel(context.Background(), created.ID, &models.CancelTurnRequest{ActorID: admin.ID})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestService_Cancel_AccessDenied(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	stranger := f.addClient(t)
	created := f.addTurn(t, client.ID, 1, domain.StatusPending)

	_, err := f.svc.Cancel(context.Background(), created.ID, &models.CancelTurnRequest{ActorID: stranger.ID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	stored, err := f.turnRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	created := f.addTurn(t, client.ID, 1, domain.StatusCancelled)

	_, err := f.svc.Cancel(context.Background(), created.ID, &models.CancelTurnRequest{ActorID: client.ID})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Empty(t, f.notifier.cancellations)
}

func TestService_Cancel_NotFound(t *testing.T) {
	f := newTurnsFixture(t)

	_, err := f.svc.Cancel(context.Background(), 999, &models.CancelTurnRequest{ActorID: 1})
	assert.ErrorIs(t, err, ErrTurnNotFound)
}

func TestService_PurgeOldCancelled(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)

	old, err := f.turnRepo.Create(context.Background(), &domain.Turn{
		Date:            time.Now().AddDate(0, 0, -60),
		StartTime:       "10:00",
		DurationMinutes: 60,
		ServiceType:     "standard_cleaning",
		Status:          domain.StatusPending,
		ClientID:        client.ID,
		SlotID:          1,
	})
	require.NoError(t, err)
	require.NoError(t, f.turnRepo.SetCancelled(context.Background(), old.ID))

	fresh, err := f.turnRepo.Create(context.Background(), &domain.Turn{
		Date:            time.Now().AddDate(0, 0, -5),
		StartTime:       "11:00",
		DurationMinutes: 60,
		ServiceType:     "standard_cleaning",
		Status:          domain.StatusPending,
		ClientID:        client.ID,
		SlotID:          2,
	})
	require.NoError(t, err)
	require.NoError(t, f.turnRepo.SetCancelled(context.Background(), fresh.ID))

	removed, err := f.svc.PurgeOldCancelled(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = f.turnRepo.GetByID(context.Background(), fresh.ID)
	assert.NoError(t, err)
}

func TestService_PurgeOldCancelled_NegativeAge(t *testing.T) {
	f := newTurnsFixture(t)

	_, err := f.svc.PurgeOldCancelled(context.Background(), -5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetStats(t *testing.T) {
	f := newTurnsFixture(t)
	client := f.addClient(t)
	f.addTurn(t, client.ID, 1, domain.StatusPending)
	f.addTurn(t, client.ID, 2, domain.StatusConfirmed)
	f.addTurn(t, client.ID, 3, domain.StatusCancelled)

	stats, err := f.svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Confirmed)
	assert.Equal(t, 1, stats.Cancelled)
}
