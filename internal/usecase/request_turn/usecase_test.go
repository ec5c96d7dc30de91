package request_turn

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	"github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/actors"
	"github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/slot"
	"github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/turn"
	"github.com/m04kA/SISLIM-TurnoService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

// passthroughTxManager выполняет функцию без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockNotifier struct {
	requested []int64
	err       error
}

func (m *mockNotifier) SendTurnRequested(_ context.Context, t *domain.Turn) (*domain.Notification, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.requested = append(m.requested, t.ID)
	return &domain.Notification{TurnID: t.ID, Kind: domain.KindReminder}, nil
}

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *UseCase
	turnRepo  *turn.MemoryRepository
	slotRepo  *slot.MemoryRepository
	actorRepo *actors.MemoryRepository
	notifier  *mockNotifier
}

func newFixture(t *testing.T, allowFallback bool) *fixture {
	t.Helper()

	f := &fixture{
		turnRepo:  turn.NewMemoryRepository(),
		slotRepo:  slot.NewMemoryRepository(),
		actorRepo: actors.NewMemoryRepository(),
		notifier:  &mockNotifier{},
	}
	f.uc = NewUseCase(f.turnRepo, f.slotRepo, f.actorRepo, f.notifier, passthroughTxManager{}, allowFallback, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func (f *fixture) addClient(t *testing.T) *domain.Client {
	t.Helper()
	client, err := f.actorRepo.CreateClient(context.Background(), &domain.Client{
		Name:  "Хуан Перес",
		Email: "juan@example.com",
	})
	require.NoError(t, err)
	return client
}

func (f *fixture) addSlot(t *testing.T, date time.Time, start, end string) *domain.AvailabilitySlot {
	t.Helper()
	s, err := f.slotRepo.Create(context.Background(), &domain.AvailabilitySlot{
		Date:        date,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Zone:        "north",
		ServiceType: "standard_cleaning",
		Available:   true,
	})
	require.NoError(t, err)
	return s
}

func validRequest(clientID int64) *Request {
	return &Request{
		ClientID:        clientID,
		Date:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 120,
		ServiceType:     "standard_cleaning",
	}
}

func TestUseCase_Execute(t *testing.T) {
	f := newFixture(t, false)
	client := f.addClient(t)
	s := f.addSlot(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "09:00", "13:00")

	resp, err := f.uc.Execute(context.Background(), validRequest(client.ID))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, client.ID, resp.ClientID)
	assert.Equal(t, s.ID, resp.SlotID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, []int64{resp.ID}, f.notifier.requested)

	// слот помечен занятым
	occupied, err := f.slotRepo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.False(t, occupied.Available)
}

func TestUseCase_Execute_PrefersCoveringSlot(t *testing.T) {
	f := newFixture(t, false)
	client := f.addClient(t)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	// первый слот не покрывает интервал 10:00-12:00 целиком
	f.addSlot(t, date, "08:00", "11:00")
	covering := f.addSlot(t, date, "09:00", "14:00")

	resp, err := f.uc.Execute(context.Background(), validRequest(client.ID))
	require.NoError(t, err)
	assert.Equal(t, covering.ID, resp.SlotID)
}

func TestUseCase_Execute_TimeConflict(t *testing.T) {
	f := newFixture(t, false)
	client := f.addClient(t)
	f.addSlot(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "09:00", "13:00")

	_, err := f.turnRepo.Create(context.Background(), &domain.Turn{
		Date:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		ServiceType:     "standard_cleaning",
		Status:          domain.StatusConfirmed,
		ClientID:        client.ID,
		SlotID:          99,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest(client.ID))
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Empty(t, f.notifier.requested)
}

func TestUseCase_Execute_CancelledTurnDoesNotConflict(t *testing.T) {
	f := newFixture(t, false)
	client := f.addClient(t)
	f.addSlot(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "09:00", "13:00")

	cancelled, err := f.turnRepo.Create(context.Background(), &domain.Turn{
		Date:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		ServiceType:     "standard_cleaning",
		Status:          domain.StatusPending,
		ClientID:        client.ID,
		SlotID:          99,
	})
	require.NoError(t, err)
	require.NoError(t, f.turnRepo.SetCancelled(context.Background(), cancelled.ID))

	resp, err := f.uc.Execute(context.Background(), validRequest(client.ID))
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestUseCase_Execute_NoSlotAvailable(t *testing.T) {
	f := newFixture(t, false)
	client := f.addClient(t)

	_, err := f.uc.Execute(context.Background(), validRequest(client.ID))
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestUseCase_Execute_FallbackDisabled(t *testing.T) {
	f := newFixture(t, false)
	client := f.addClient(t)

	// слот есть, но на другую дату
	f.addSlot(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), "09:00", "13:00")

	_, err := f.uc.Execute(context.Background(), validRequest(client.ID))
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestUseCase_Execute_FallbackEnabled(t *testing.T) {
	f := newFixture(t, true)
	client := f.addClient(t)

	other := f.addSlot(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), "09:00", "13:00")

	resp, err := f.uc.Execute(context.Background(), validRequest(client.ID))
	require.NoError(t, err)
	assert.Equal(t, other.ID, resp.SlotID)
	// дата турна остается запрошенной, fallback меняет только слот
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), resp.Date)
}

func TestUseCase_Execute_ClientNotFound(t *testing.T) {
	f := newFixture(t, false)
	f.addSlot(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "09:00", "13:00")

	_, err := f.uc.Execute(context.Background(), validRequest(999))
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	f := newFixture(t, false)
	client := f.addClient(t)

	req := validRequest(client.ID)
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_SameDayIsAllowed(t *testing.T) {
	f := newFixture(t, false)
	client := f.addClient(t)
	f.addSlot(t, testNow, "09:00", "13:00")

	req := validRequest(client.ID)
	req.Date = testNow

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	f := newFixture(t, false)
	client := f.addClient(t)

	longNotes := strings.Repeat("a", domain.MaxNotesLength+1)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero client", mutate: func(r *Request) { r.ClientID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "bad start time", mutate: func(r *Request) { r.StartTime = "10:65" }},
		{name: "zero duration", mutate: func(r *Request) { r.DurationMinutes = 0 }},
		{name: "excessive duration", mutate: func(r *Request) { r.DurationMinutes = domain.MaxDurationMinutes + 1 }},
		{name: "empty service type", mutate: func(r *Request) { r.ServiceType = "" }},
		{name: "long service type", mutate: func(r *Request) { r.ServiceType = strings.Repeat("x", domain.MaxServiceTypeLength+1) }},
		{name: "long notes", mutate: func(r *Request) { r.Notes = &longNotes }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(client.ID)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_NotificationFailureDoesNotRollback(t *testing.T) {
	f := newFixture(t, false)
	client := f.addClient(t)
	f.addSlot(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "09:00", "13:00")

	f.notifier.err = assert.AnError

	resp, err := f.uc.Execute(context.Background(), validRequest(client.ID))
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}
