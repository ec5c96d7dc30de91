package notifications

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	"github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/notification"
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

func newTestService(now time.Time) (*Service, *notification.MemoryRepository) {
	repo := notification.NewMemoryRepository()
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc, repo
}

func testTurn() *domain.Turn {
	return &domain.Turn{
		ID:              42,
		Date:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 120,
		ServiceType:     "deep_cleaning",
		Status:          domain.StatusPending,
		ClientID:        7,
		SlotID:          3,
	}
}

func TestService_Send(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	sent, err := svc.Send(ctx, &domain.Notification{
		TurnID:  42,
		Kind:    domain.KindReminder,
		Message: "тестовое сообщение",
	})
	require.NoError(t, err)

	assert.NotZero(t, sent.ID)
	assert.True(t, sent.Sent)
	require.NotNil(t, sent.SentAt)
	assert.Equal(t, now, *sent.SentAt)

	stored, err := repo.GetByID(ctx, sent.ID)
	require.NoError(t, err)
	assert.True(t, stored.Sent)
}

func TestService_Send_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(time.Now())

	sentAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	already := &domain.Notification{
		ID:      5,
		TurnID:  42,
		Kind:    domain.KindAlert,
		Message: "уже отправлено",
		Sent:    true,
		SentAt:  &sentAt,
	}

	result, err := svc.Send(ctx, already)
	require.NoError(t, err)
	assert.Same(t, already, result)

	// повторная отправка не создает новых записей
	all, err := repo.GetWithFilter(ctx, domain.NotificationsFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestService_Send_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	tests := []struct {
		name string
		n    *domain.Notification
	}{
		{name: "nil notification", n: nil},
		{name: "missing turn", n: &domain.Notification{Kind: domain.KindAlert, Message: "x"}},
		{name: "empty message", n: &domain.Notification{TurnID: 1, Kind: domain.KindAlert, Message: "   "}},
		{name: "message too long", n: &domain.Notification{TurnID: 1, Kind: domain.KindAlert, Message: strings.Repeat("a", domain.MaxMessageLength+1)}},
		{name: "unknown kind", n: &domain.Notification{TurnID: 1, Kind: "sms", Message: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(ctx, tt.n)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_SendTurnRequested(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	n, err := svc.SendTurnRequested(ctx, testTurn())
	require.NoError(t, err)

	assert.Equal(t, domain.KindReminder, n.Kind)
	assert.Equal(t, int64(42), n.TurnID)
	assert.Contains(t, n.Message, "2026-09-01")
	assert.Contains(t, n.Message, "10:00")
	assert.Contains(t, n.Message, "ожидает подтверждения")

	_, err = svc.SendTurnRequested(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SendTurnConfirmation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	n, err := svc.SendTurnConfirmation(ctx, testTurn())
	require.NoError(t, err)

	assert.Equal(t, domain.KindConfirmation, n.Kind)
	assert.Contains(t, n.Message, "подтверждена")
	assert.Contains(t, n.Message, "120 минут")

	_, err = svc.SendTurnConfirmation(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SendTurnCancellation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	n, err := svc.SendTurnCancellation(ctx, testTurn())
	require.NoError(t, err)

	assert.Equal(t, domain.KindAlert, n.Kind)
	assert.Contains(t, n.Message, "отменена")
}

func TestService_SendTurnReminder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	n, err := svc.SendTurnReminder(ctx, testTurn(), 24)
	require.NoError(t, err)
	assert.Equal(t, domain.KindReminder, n.Kind)
	assert.Contains(t, n.Message, "Напоминание")

	_, err = svc.SendTurnReminder(ctx, testTurn(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SendTurnReminder(ctx, nil, 24)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SendBulk(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	turns := []*domain.Turn{
		{ID: 1},
		{ID: 2},
		{ID: 3},
	}

	sent, err := svc.SendBulk(ctx, turns, domain.KindAlert, "сервис недоступен 1 сентября")
	require.NoError(t, err)
	assert.Equal(t, 3, sent)

	list, err := svc.ListByTurn(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.KindAlert, list[0].Kind)
}

func TestService_SendBulk_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	_, err := svc.SendBulk(ctx, nil, domain.KindAlert, "msg")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SendBulk(ctx, []*domain.Turn{{ID: 1}}, domain.KindAlert, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SendBulk(ctx, []*domain.Turn{{ID: 1}}, "push", "msg")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SendBulk_BestEffort(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	// турн с нулевым ID не проходит валидацию, остальные отправляются
	turns := []*domain.Turn{
		{ID: 1},
		{ID: 0},
		{ID: 3},
	}

	sent, err := svc.SendBulk(ctx, turns, domain.KindReminder, "msg")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
}

func TestService_ResendPending(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(time.Now())

	_, err := repo.Create(ctx, &domain.Notification{TurnID: 1, Kind: domain.KindReminder, Message: "первое"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Notification{TurnID: 2, Kind: domain.KindAlert, Message: "второе"})
	require.NoError(t, err)

	resent, err := svc.ResendPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, resent)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestService_ListByTurn_InvalidID(t *testing.T) {
	svc, _ := newTestService(time.Now())

	_, err := svc.ListByTurn(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_PurgeOldSent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	old, err := repo.Create(ctx, &domain.Notification{TurnID: 1, Kind: domain.KindAlert, Message: "старое"})
	require.NoError(t, err)
	require.NoError(t, repo.MarkSent(ctx, old.ID, now.AddDate(0, 0, -120)))

	fresh, err := repo.Create(ctx, &domain.Notification{TurnID: 2, Kind: domain.KindAlert, Message: "свежее"})
	require.NoError(t, err)
	require.NoError(t, repo.MarkSent(ctx, fresh.ID, now.AddDate(0, 0, -1)))

	removed, err := svc.PurgeOldSent(ctx, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.GetByID(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestService_PurgeOldSent_NegativeAge(t *testing.T) {
	svc, _ := newTestService(time.Now())

	_, err := svc.PurgeOldSent(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetStats(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(time.Now())

	_, err := svc.SendTurnConfirmation(ctx, testTurn())
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Notification{TurnID: 1, Kind: domain.KindAlert, Message: "не отправлено"})
	require.NoError(t, err)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Confirmations)
	assert.Equal(t, 1, stats.Alerts)
}
