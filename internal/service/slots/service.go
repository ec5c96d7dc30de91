package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	slotRepo "github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/slot"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/slots/models"
	"github.com/m04kA/SISLIM-TurnoService/pkg/types"
)

// Service сервис управления слотами доступности
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Create создает новый слот доступности
// Новый слот всегда свободен
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot date=%s %s-%s zone=%s", req.Date, req.StartTime, req.EndTime, req.Zone)

	slot, err := req.ToDomainSlot()
	if err != nil {
		s.logger.Warn("Create: invalid slot request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateSlotWindow(slot); err != nil {
		s.logger.Warn("Create: invalid slot window: %v", err)
		return nil, err
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.getSlot(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSlot(slot), nil
}

// List получает слоты с фильтрацией по дате, зоне и типу услуги
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	slots, err := s.slotRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d slots", len(slots))
	return models.FromDomainSlotList(slots), nil
}

// Update меняет параметры слота
// Окно слота повторно валидируется после применения изменений
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%d", id)

	slot, err := s.getSlot(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if err := applySlotUpdate(slot, req); err != nil {
		s.logger.Warn("Update: invalid update for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateSlotWindow(slot); err != nil {
		s.logger.Warn("Update: invalid slot window for id=%d: %v", id, err)
		return nil, err
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Update: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated slot id=%d", id)
	return models.FromDomainSlot(slot), nil
}

// Block помечает слот занятым вручную (без привязки к турну)
func (s *Service) Block(ctx context.Context, id int64) (*models.SlotResponse, error) {
	s.logger.Info("Block: blocking slot id=%d", id)
	return s.setAvailability(ctx, "Block", id, false)
}

// Unblock освобождает слот, помеченный занятым
func (s *Service) Unblock(ctx context.Context, id int64) (*models.SlotResponse, error) {
	s.logger.Info("Unblock: unblocking slot id=%d", id)
	return s.setAvailability(ctx, "Unblock", id, true)
}

// Delete удаляет слот
// Занятый слот удалить нельзя
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting slot id=%d", id)

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("Delete: slot id=%d not found", id)
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotOccupied):
			s.logger.Warn("Delete: slot id=%d is occupied", id)
			return ErrSlotOccupied
		default:
			s.logger.Error("Delete: repository error for slot id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Delete: successfully deleted slot id=%d", id)
	return nil
}

func (s *Service) setAvailability(ctx context.Context, op string, id int64, available bool) (*models.SlotResponse, error) {
	slot, err := s.getSlot(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if slot.Available == available {
		if available {
			s.logger.Warn("%s: slot id=%d is already free", op, id)
			return nil, ErrAlreadyFree
		}
		s.logger.Warn("%s: slot id=%d is already blocked", op, id)
		return nil, ErrAlreadyBlocked
	}

	if err := s.slotRepo.SetAvailable(ctx, id, available); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	slot.Available = available
	s.logger.Info("%s: successfully updated slot id=%d, available=%t", op, id, available)
	return models.FromDomainSlot(slot), nil
}

func (s *Service) getSlot(ctx context.Context, op string, id int64) (*domain.AvailabilitySlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%d not found", op, id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return slot, nil
}

// validateSlotWindow проверяет, что окно слота корректно: start строго раньше end
func validateSlotWindow(slot *domain.AvailabilitySlot) error {
	if err := slot.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
	}
	if err := slot.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end_time: %v", ErrInvalidInput, err)
	}
	if !slot.StartTime.IsBefore(slot.EndTime) {
		return fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}
	if slot.Zone == "" {
		return fmt.Errorf("%w: zone must not be empty", ErrInvalidInput)
	}
	if slot.ServiceType == "" {
		return fmt.Errorf("%w: service_type must not be empty", ErrInvalidInput)
	}
	return nil
}

// applySlotUpdate накладывает непустые поля запроса на слот
func applySlotUpdate(slot *domain.AvailabilitySlot, req *models.UpdateSlotRequest) error {
	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %v", *req.Date, err)
		}
		slot.Date = date
	}
	if req.StartTime != nil {
		start, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return fmt.Errorf("invalid start_time %q: %v", *req.StartTime, err)
		}
		slot.StartTime = start
	}
	if req.EndTime != nil {
		end, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return fmt.Errorf("invalid end_time %q: %v", *req.EndTime, err)
		}
		slot.EndTime = end
	}
	if req.Zone != nil {
		slot.Zone = *req.Zone
	}
	if req.ServiceType != nil {
		slot.ServiceType = *req.ServiceType
	}
	return nil
}
