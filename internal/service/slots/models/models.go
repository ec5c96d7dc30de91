package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	"github.com/m04kA/SISLIM-TurnoService/pkg/types"
)

// CreateSlotRequest запрос на создание слота доступности
type CreateSlotRequest struct {
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Zone        string `json:"zone"`
	ServiceType string `json:"service_type"`
}

// UpdateSlotRequest запрос на изменение слота
// Все поля опциональны: меняется только то, что передано
type UpdateSlotRequest struct {
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	Zone        *string `json:"zone,omitempty"`
	ServiceType *string `json:"service_type,omitempty"`
}

// ListSlotsRequest параметры фильтрации списка слотов
type ListSlotsRequest struct {
	Date        *string
	Zone        *string
	ServiceType *string
	FreeOnly    bool
}

// ToDomainFilter конвертирует параметры запроса в доменный фильтр
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotsFilter, error) {
	filter := domain.SlotsFilter{
		Zone:        r.Zone,
		ServiceType: r.ServiceType,
		FreeOnly:    r.FreeOnly,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return domain.SlotsFilter{}, fmt.Errorf("invalid date %q: %w", *r.Date, err)
		}
		filter.Date = &date
	}

	return filter, nil
}

// SlotResponse ответ с данными слота доступности
type SlotResponse struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Zone            string `json:"zone"`
	ServiceType     string `json:"service_type"`
	Available       bool   `json:"available"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromDomainSlot конвертирует доменный слот в DTO ответа
func FromDomainSlot(s *domain.AvailabilitySlot) *SlotResponse {
	return &SlotResponse{
		ID:              s.ID,
		Date:            s.Date.Format(domain.DateFormat),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		DurationMinutes: s.DurationMinutes(),
		Zone:            s.Zone,
		ServiceType:     s.ServiceType,
		Available:       s.Available,
	}
}

// FromDomainSlotList конвертирует список доменных слотов в DTO ответа
func FromDomainSlotList(slots []*domain.AvailabilitySlot) *SlotListResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, *FromDomainSlot(s))
	}

	return &SlotListResponse{
		Slots: out,
		Total: len(out),
	}
}

// ToDomainSlot конвертирует запрос на создание в доменный слот
func (r *CreateSlotRequest) ToDomainSlot() (*domain.AvailabilitySlot, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time %q: %w", r.StartTime, err)
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end_time %q: %w", r.EndTime, err)
	}

	return &domain.AvailabilitySlot{
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Zone:        r.Zone,
		ServiceType: r.ServiceType,
		Available:   true,
	}, nil
}
