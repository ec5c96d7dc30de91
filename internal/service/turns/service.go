package turns

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	actorsRepo "github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/actors"
	turnRepo "github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/turn"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns/models"
)

// Service сервис жизненного цикла турнов
// Единственная точка, через которую меняются статусы турнов
type Service struct {
	turnRepo     TurnRepository
	slotRepo     SlotRepository
	actorRepo    ActorRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса турнов
func NewService(
	turnRepo TurnRepository,
	slotRepo SlotRepository,
	actorRepo ActorRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		turnRepo:     turnRepo,
		slotRepo:     slotRepo,
		actorRepo:    actorRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает турн по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TurnResponse, error) {
	t, err := s.getTurn(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainTurn(t), nil
}

// ListByClient получает историю турнов клиента
// Опционально фильтрует по статусу
func (s *Service) ListByClient(ctx context.Context, clientID int64, status *string) (*models.TurnListResponse, error) {
	s.logger.Info("ListByClient: fetching turns for client=%d, status=%v", clientID, status)

	if clientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	filter := domain.TurnsFilter{ClientID: &clientID, IncludeCancelled: true}
	if status != nil {
		domainStatus, err := models.ToDomainTurnStatus(*status)
		if err != nil {
			s.logger.Warn("ListByClient: invalid status=%s for client=%d", *status, clientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &domainStatus
	}

	turns, err := s.turnRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTurnList(turns), nil
}

// List получает турны с фильтрацией по дате и статусу
func (s *Service) List(ctx context.Context, req *models.ListTurnsRequest) (*models.TurnListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	turns, err := s.turnRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d turns", len(turns))
	return models.FromDomainTurnList(turns), nil
}

// Confirm подтверждает pending-турн от имени администратора
// Переход разрешен только из статуса pending
func (s *Service) Confirm(ctx context.Context, turnID int64, req *models.ConfirmTurnRequest) (*models.TurnResponse, error) {
	s.logger.Info("Confirm: confirming turn id=%d by admin=%d", turnID, req.AdminID)

	// Проверяем, что администратор существует
	if _, err := s.actorRepo.GetAdminByID(ctx, req.AdminID); err != nil {
		if errors.Is(err, actorsRepo.ErrAdminNotFound) {
			s.logger.Warn("Confirm: admin id=%d not found", req.AdminID)
			return nil, ErrAdminNotFound
		}
		s.logger.Error("Confirm: failed to get admin id=%d: %v", req.AdminID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	t, err := s.getTurn(ctx, "Confirm", turnID)
	if err != nil {
		return nil, err
	}

	if !t.CanBeConfirmed() {
		s.logger.Warn("Confirm: turn id=%d cannot be confirmed, status=%s", turnID, t.Status)
		return nil, fmt.Errorf("%w: turn is %s", ErrInvalidState, t.Status)
	}

	if err := s.turnRepo.SetConfirmed(ctx, turnID, req.AdminID); err != nil {
		if errors.Is(err, turnRepo.ErrTurnNotFound) {
			return nil, ErrTurnNotFound
		}
		s.logger.Error("Confirm: repository error for turn id=%d: %v", turnID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	t.Status = domain.StatusConfirmed
	t.AdminID = &req.AdminID

	// Уведомление об изменении статуса; сбой отправки не откатывает подтверждение
	if _, err := s.notifier.SendTurnConfirmation(ctx, t); err != nil {
		s.logger.Warn("Confirm: failed to send confirmation notification for turn id=%d: %v", turnID, err)
	}

	s.logger.Info("Confirm: successfully confirmed turn id=%d by admin=%d", turnID, req.AdminID)
	return models.FromDomainTurn(t), nil
}

// Cancel отменяет турн
// Клиент может отменить только свой турн; администратор - любой.
// Повторная отмена завершается ошибкой, состояние не меняется
func (s *Service) Cancel(ctx context.Context, turnID int64, req *models.CancelTurnRequest) (*models.TurnResponse, error) {
	s.logger.Info("Cancel: cancelling turn id=%d by actor=%d", turnID, req.ActorID)

	t, err := s.getTurn(ctx, "Cancel", turnID)
	if err != nil {
		return nil, err
	}

	if t.IsCancelled() {
		s.logger.Warn("Cancel: turn id=%d is already cancelled", turnID)
		return nil, ErrAlreadyCancelled
	}

	// Проверяем права: владелец турна или администратор
	if t.ClientID != req.ActorID {
		if _, err := s.actorRepo.GetAdminByID(ctx, req.ActorID); err != nil {
			if errors.Is(err, actorsRepo.ErrAdminNotFound) {
				s.logger.Warn("Cancel: access denied for actor=%d to cancel turn id=%d", req.ActorID, turnID)
				return nil, ErrAccessDenied
			}
			s.logger.Error("Cancel: failed to check admin id=%d: %v", req.ActorID, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	if !t.CanBeCancelled() {
		s.logger.Warn("Cancel: turn id=%d cannot be cancelled, status=%s", turnID, t.Status)
		return nil, fmt.Errorf("%w: turn is %s", ErrInvalidState, t.Status)
	}

	if err := s.turnRepo.SetCancelled(ctx, turnID); err != nil {
		if errors.Is(err, turnRepo.ErrTurnNotFound) {
			return nil, ErrTurnNotFound
		}
		s.logger.Error("Cancel: repository error for turn id=%d: %v", turnID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Освобождаем слот, чтобы окно снова можно было бронировать
	if err := s.slotRepo.SetAvailable(ctx, t.SlotID, true); err != nil {
		s.logger.Warn("Cancel: failed to release slot id=%d for turn id=%d: %v", t.SlotID, turnID, err)
	}

	now := s.timeProvider.Now()
	t.Status = domain.StatusCancelled
	t.CancelledAt = &now

	// Alert-уведомление об отмене; сбой отправки не откатывает отмену
	if _, err := s.notifier.SendTurnCancellation(ctx, t); err != nil {
		s.logger.Warn("Cancel: failed to send cancellation notification for turn id=%d: %v", turnID, err)
	}

	s.logger.Info("Cancel: successfully cancelled turn id=%d", turnID)
	return models.FromDomainTurn(t), nil
}

// PurgeOldCancelled удаляет отмененные турны старше ageInDays дней
// Возвращает количество удаленных. Уведомления удаленных турнов не затрагиваются -
// у них собственный цикл очистки (notifications.PurgeOldSent)
func (s *Service) PurgeOldCancelled(ctx context.Context, ageInDays int) (int64, error) {
	if ageInDays < 0 {
		return 0, fmt.Errorf("%w: ageInDays must not be negative", ErrInvalidInput)
	}

	cutoff := s.timeProvider.Now().AddDate(0, 0, -ageInDays)

	removed, err := s.turnRepo.DeleteCancelledBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("PurgeOldCancelled: repository error: %v", err)
		return 0, fmt.Errorf("%w: PurgeOldCancelled - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("PurgeOldCancelled: removed %d cancelled turns older than %d days", removed, ageInDays)
	return removed, nil
}

// GetStats возвращает количество турнов по статусам
func (s *Service) GetStats(ctx context.Context) (*domain.TurnStats, error) {
	stats, err := s.turnRepo.GetStats(ctx)
	if err != nil {
		s.logger.Error("GetStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	return stats, nil
}

// getTurn достает турн по ID с маппингом ошибок репозитория
func (s *Service) getTurn(ctx context.Context, op string, id int64) (*domain.Turn, error) {
	t, err := s.turnRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, turnRepo.ErrTurnNotFound) {
			s.logger.Warn("%s: turn id=%d not found", op, id)
			return nil, ErrTurnNotFound
		}
		s.logger.Error("%s: repository error for turn id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return t, nil
}
