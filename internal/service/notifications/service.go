package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

// Service сервис для работы с уведомлениями
// "Отправка" уведомления - это запись в хранилище плюс строка в логе сервиса;
// внешних каналов доставки (email, sms) у системы нет
type Service struct {
	notificationRepo NotificationRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(notificationRepo NotificationRepository, logger Logger) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Send отправляет уведомление
// Уже отправленное уведомление повторно не отправляется (идемпотентность)
func (s *Service) Send(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	if err := validateNotification(n); err != nil {
		s.logger.Warn("Send: validation failed: %v", err)
		return nil, err
	}

	// Идемпотентность: повторная отправка уже отправленного уведомления - no-op
	if n.Sent {
		s.logger.Info("Send: notification id=%d already sent, skipping", n.ID)
		return n, nil
	}

	// Сохраняем запись, если она еще не персистентна
	if n.ID == 0 {
		created, err := s.notificationRepo.Create(ctx, n)
		if err != nil {
			s.logger.Error("Send: failed to create notification for turn=%d: %v", n.TurnID, err)
			return nil, fmt.Errorf("%w: Send - repository error: %v", ErrInternal, err)
		}
		n = created
	}

	// Передача: запись в лог сервиса
	s.logger.Info("NOTIFY [%s] turn=%d: %s", n.Kind, n.TurnID, n.Message)

	sentAt := s.timeProvider.Now()
	if err := s.notificationRepo.MarkSent(ctx, n.ID, sentAt); err != nil {
		s.logger.Error("Send: failed to mark notification id=%d as sent: %v", n.ID, err)
		return nil, fmt.Errorf("%w: Send - repository error: %v", ErrInternal, err)
	}

	n.Sent = true
	n.SentAt = &sentAt

	return n, nil
}

// SendTurnRequested формирует и отправляет уведомление о принятой заявке
// Заявка еще не подтверждена, поэтому уведомление имеет вид напоминания
func (s *Service) SendTurnRequested(ctx context.Context, t *domain.Turn) (*domain.Notification, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: turn is required", ErrInvalidInput)
	}

	message := fmt.Sprintf(
		"Заявка на уборку %s в %s принята и ожидает подтверждения администратора. Услуга: %s.",
		t.Date.Format(domain.DateFormat), t.StartTime, t.ServiceType,
	)

	return s.Send(ctx, &domain.Notification{
		TurnID:  t.ID,
		Kind:    domain.KindReminder,
		Message: message,
	})
}

// SendTurnConfirmation формирует и отправляет уведомление-подтверждение по турну
func (s *Service) SendTurnConfirmation(ctx context.Context, t *domain.Turn) (*domain.Notification, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: turn is required", ErrInvalidInput)
	}

	message := fmt.Sprintf(
		"Ваша запись на %s в %s подтверждена. Услуга: %s. Длительность: %d минут.",
		t.Date.Format(domain.DateFormat), t.StartTime, t.ServiceType, t.DurationMinutes,
	)

	return s.Send(ctx, &domain.Notification{
		TurnID:  t.ID,
		Kind:    domain.KindConfirmation,
		Message: message,
	})
}

// SendTurnCancellation формирует и отправляет уведомление об отмене турна
func (s *Service) SendTurnCancellation(ctx context.Context, t *domain.Turn) (*domain.Notification, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: turn is required", ErrInvalidInput)
	}

	message := fmt.Sprintf(
		"Ваша запись на %s в %s отменена. Для переноса свяжитесь с администратором.",
		t.Date.Format(domain.DateFormat), t.StartTime,
	)

	return s.Send(ctx, &domain.Notification{
		TurnID:  t.ID,
		Kind:    domain.KindAlert,
		Message: message,
	})
}

// SendTurnReminder формирует и отправляет напоминание о турне
func (s *Service) SendTurnReminder(ctx context.Context, t *domain.Turn, hoursBefore int) (*domain.Notification, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: turn is required", ErrInvalidInput)
	}
	if hoursBefore <= 0 {
		return nil, fmt.Errorf("%w: hoursBefore must be positive", ErrInvalidInput)
	}

	message := fmt.Sprintf(
		"Напоминание: уборка запланирована на %s в %s. Услуга: %s. Пожалуйста, подтвердите.",
		t.Date.Format(domain.DateFormat), t.StartTime, t.ServiceType,
	)

	return s.Send(ctx, &domain.Notification{
		TurnID:  t.ID,
		Kind:    domain.KindReminder,
		Message: message,
	})
}

// SendBulk отправляет одно и то же сообщение по списку турнов
// Best-effort: частичные сбои не откатывают уже отправленные уведомления.
// Возвращает количество успешно отправленных
func (s *Service) SendBulk(ctx context.Context, turns []*domain.Turn, kind domain.NotificationKind, message string) (int, error) {
	if len(turns) == 0 {
		return 0, fmt.Errorf("%w: turns list must not be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(message) == "" {
		return 0, fmt.Errorf("%w: message must not be empty", ErrInvalidInput)
	}
	if !domain.IsValidKind(kind) {
		return 0, fmt.Errorf("%w: invalid notification kind %q", ErrInvalidInput, kind)
	}

	sent := 0
	for _, t := range turns {
		if _, err := s.Send(ctx, &domain.Notification{
			TurnID:  t.ID,
			Kind:    kind,
			Message: message,
		}); err != nil {
			s.logger.Warn("SendBulk: failed to send %s notification for turn=%d: %v", kind, t.ID, err)
			continue
		}
		sent++
	}

	s.logger.Info("SendBulk: sent %d of %d notifications", sent, len(turns))
	return sent, nil
}

// ResendPending повторно отправляет неотправленные уведомления
// Возвращает количество успешно отправленных
func (s *Service) ResendPending(ctx context.Context) (int, error) {
	pending, err := s.ListPending(ctx)
	if err != nil {
		return 0, err
	}

	resent := 0
	for _, n := range pending {
		if _, err := s.Send(ctx, n); err != nil {
			s.logger.Warn("ResendPending: failed to resend notification id=%d: %v", n.ID, err)
			continue
		}
		resent++
	}

	s.logger.Info("ResendPending: resent %d of %d pending notifications", resent, len(pending))
	return resent, nil
}

// ListByTurn возвращает уведомления по турну
func (s *Service) ListByTurn(ctx context.Context, turnID int64) ([]*domain.Notification, error) {
	if turnID <= 0 {
		return nil, fmt.Errorf("%w: turnID must be positive", ErrInvalidInput)
	}

	notifications, err := s.notificationRepo.GetWithFilter(ctx, domain.NotificationsFilter{TurnID: &turnID})
	if err != nil {
		s.logger.Error("ListByTurn: repository error for turn=%d: %v", turnID, err)
		return nil, fmt.Errorf("%w: ListByTurn - repository error: %v", ErrInternal, err)
	}

	return notifications, nil
}

// ListPending возвращает неотправленные уведомления
func (s *Service) ListPending(ctx context.Context) ([]*domain.Notification, error) {
	notifications, err := s.notificationRepo.GetWithFilter(ctx, domain.NotificationsFilter{PendingOnly: true})
	if err != nil {
		s.logger.Error("ListPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPending - repository error: %v", ErrInternal, err)
	}

	return notifications, nil
}

// PurgeOldSent удаляет отправленные уведомления старше ageInDays дней
// Возвращает количество удаленных
func (s *Service) PurgeOldSent(ctx context.Context, ageInDays int) (int64, error) {
	if ageInDays < 0 {
		return 0, fmt.Errorf("%w: ageInDays must not be negative", ErrInvalidInput)
	}

	cutoff := s.timeProvider.Now().AddDate(0, 0, -ageInDays)

	removed, err := s.notificationRepo.DeleteSentBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("PurgeOldSent: repository error: %v", err)
		return 0, fmt.Errorf("%w: PurgeOldSent - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("PurgeOldSent: removed %d notifications older than %d days", removed, ageInDays)
	return removed, nil
}

// GetStats возвращает статистику уведомлений
func (s *Service) GetStats(ctx context.Context) (*domain.NotificationStats, error) {
	stats, err := s.notificationRepo.GetStats(ctx)
	if err != nil {
		s.logger.Error("GetStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	return stats, nil
}

// validateNotification проверяет обязательные поля уведомления
func validateNotification(n *domain.Notification) error {
	if n == nil {
		return fmt.Errorf("%w: notification is required", ErrInvalidInput)
	}
	if n.TurnID <= 0 {
		return fmt.Errorf("%w: turnID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(n.Message) == "" {
		return fmt.Errorf("%w: message must not be empty", ErrInvalidInput)
	}
	if len(n.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message is too long", ErrInvalidInput)
	}
	if !domain.IsValidKind(n.Kind) {
		return fmt.Errorf("%w: invalid notification kind %q", ErrInvalidInput, n.Kind)
	}
	return nil
}
