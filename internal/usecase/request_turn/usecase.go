package request_turn

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	actorsRepo "github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/actors"
)

// UseCase use case для создания заявки на уборку
type UseCase struct {
	turnRepo          TurnRepository
	slotRepo          SlotRepository
	actorRepo         ActorRepository
	notifier          Notifier
	txManager         TransactionManager
	timeProvider      TimeProvider
	allowFallbackSlot bool
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	turnRepo TurnRepository,
	slotRepo SlotRepository,
	actorRepo ActorRepository,
	notifier Notifier,
	txManager TransactionManager,
	allowFallbackSlot bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		turnRepo:          turnRepo,
		slotRepo:          slotRepo,
		actorRepo:         actorRepo,
		notifier:          notifier,
		txManager:         txManager,
		timeProvider:      &RealTimeProvider{},
		allowFallbackSlot: allowFallbackSlot,
		logger:            logger,
	}
}

// Execute выполняет use case создания заявки на уборку
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// на одну дату и время может существовать только один активный турн
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestTurn: client=%d, date=%s, time=%s, service=%s, duration=%d",
		req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceType, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestTurn: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("RequestTurn: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Проверяем существование клиента
	if _, err := uc.actorRepo.GetClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, actorsRepo.ErrClientNotFound) {
			uc.logger.Warn("RequestTurn: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("RequestTurn: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Turn

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Проверяем конфликт: активный турн на эту дату и время (FOR UPDATE)
		conflictFilter := domain.TurnsFilter{
			Date:      &req.Date,
			StartTime: &req.StartTime,
		}

		existing, err := uc.turnRepo.GetWithFilter(txCtx, conflictFilter)
		if err != nil {
			uc.logger.Error("RequestTurn: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}

		if len(existing) > 0 {
			uc.logger.Warn("RequestTurn: time conflict on %s %s with turn id=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, existing[0].ID)
			return ErrTimeConflict
		}

		// 4.2. Ищем свободный слот на эту дату и тип услуги (FOR UPDATE)
		slotFilter := domain.SlotsFilter{
			Date:        &req.Date,
			ServiceType: &req.ServiceType,
			FreeOnly:    true,
		}

		slots, err := uc.slotRepo.GetWithFilter(txCtx, slotFilter)
		if err != nil {
			uc.logger.Error("RequestTurn: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		slot, err := pickSlot(slots, req.StartTime, req.DurationMinutes)
		if err != nil {
			uc.logger.Error("RequestTurn: failed to match slot: %v", err)
			return fmt.Errorf("%w: failed to match slot: %v", ErrInternal, err)
		}

		// Fallback-режим: при отсутствии слота на дату берем первый свободный
		// слот этого типа услуги независимо от даты
		if slot == nil && uc.allowFallbackSlot {
			anySlots, err := uc.slotRepo.GetWithFilter(txCtx, domain.SlotsFilter{
				ServiceType: &req.ServiceType,
				FreeOnly:    true,
			})
			if err != nil {
				uc.logger.Error("RequestTurn: failed to get fallback slots: %v", err)
				return fmt.Errorf("%w: failed to get fallback slots: %v", ErrInternal, err)
			}

			slot = firstFreeSlot(anySlots)
			if slot != nil {
				uc.logger.Warn("RequestTurn: using fallback slot id=%d dated %s for requested date %s",
					slot.ID, slot.Date.Format(domain.DateFormat), req.Date.Format(domain.DateFormat))
			}
		}

		if slot == nil {
			uc.logger.Warn("RequestTurn: no free slot covers %s %s+%dm for service=%s",
				req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes, req.ServiceType)
			return ErrNoSlotAvailable
		}

		// 4.3. Помечаем слот занятым
		if err := uc.slotRepo.SetAvailable(txCtx, slot.ID, false); err != nil {
			uc.logger.Error("RequestTurn: failed to occupy slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to occupy slot: %v", ErrInternal, err)
		}

		// 4.4. Создаем турн в статусе pending
		turn := &domain.Turn{
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			ServiceType:     req.ServiceType,
			Status:          domain.StatusPending,
			ClientID:        req.ClientID,
			SlotID:          slot.ID,
			Notes:           req.Notes,
		}

		created, err := uc.turnRepo.Create(txCtx, turn)
		if err != nil {
			uc.logger.Error("RequestTurn: failed to create turn: %v", err)
			return fmt.Errorf("%w: failed to create turn: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 5. Уведомление о принятой заявке; сбой отправки не откатывает созданный турн
	if _, err := uc.notifier.SendTurnRequested(ctx, result); err != nil {
		uc.logger.Warn("RequestTurn: failed to send notification for turn id=%d: %v", result.ID, err)
	}

	uc.logger.Info("RequestTurn: successfully created turn id=%d in slot id=%d", result.ID, result.SlotID)
	return toResponse(result), nil
}
