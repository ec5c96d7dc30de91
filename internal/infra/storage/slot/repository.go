package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	"github.com/m04kA/SISLIM-TurnoService/pkg/dbmetrics"
	"github.com/m04kA/SISLIM-TurnoService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"zone",
	"service_type",
	"available",
	"created_at",
	"updated_at",
}

// Repository PostgreSQL-репозиторий слотов доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот доступности
func (r *Repository) Create(ctx context.Context, s *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns(
			"slot_date",
			"start_time",
			"end_time",
			"zone",
			"service_type",
			"available",
		).
		Values(
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Zone,
			s.ServiceType,
			s.Available,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("availability_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetWithFilter получает слоты с фильтрацией по дате, зоне, типу услуги
// и признаку свободности
//
// Внутри транзакции выборка блокируется через FOR UPDATE - это используется
// при подборе слота для нового турна
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.SlotsFilter) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("availability_slots")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": *filter.Date})
	}
	if filter.Zone != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"zone": *filter.Zone})
	}
	if filter.ServiceType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_type": *filter.ServiceType})
	}
	if filter.FreeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"available": true})
	}

	selectBuilder = selectBuilder.OrderBy("slot_date ASC, start_time ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Update обновляет дату, временной диапазон, зону и тип услуги слота
func (r *Repository) Update(ctx context.Context, s *domain.AvailabilitySlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("slot_date", s.Date).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("zone", s.Zone).
		Set("service_type", s.ServiceType).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Update", query, args)
}

// SetAvailable проставляет признак свободности слота
// Используется при блокировке/разблокировке и при бронировании турна
func (r *Repository) SetAvailable(ctx context.Context, id int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("available", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailable - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetAvailable", query, args)
}

// Delete удаляет слот. Занятый слот удалить нельзя
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Проверяем, что слот существует и свободен
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.Available {
		return ErrSlotOccupied
	}

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"available": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Delete", query, args)
}

// execExpectingRow выполняет запрос и проверяет, что строка была затронута
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSlot(row rowScanner) (*domain.AvailabilitySlot, error) {
	var s domain.AvailabilitySlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Zone,
		&s.ServiceType,
		&s.Available,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.AvailabilitySlot, error) {
	slots := make([]*domain.AvailabilitySlot, 0)

	for rows.Next() {
		s, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
