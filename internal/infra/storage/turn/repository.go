package turn

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	"github.com/m04kA/SISLIM-TurnoService/pkg/dbmetrics"
	"github.com/m04kA/SISLIM-TurnoService/pkg/psqlbuilder"
)

var turnColumns = []string{
	"id",
	"turn_date",
	"start_time",
	"duration_minutes",
	"service_type",
	"status",
	"client_id",
	"slot_id",
	"admin_id",
	"notes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository PostgreSQL-репозиторий турнов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория турнов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый турн
// Если в контексте передана активная транзакция, использует её -
// так проверка конфликта и вставка выполняются атомарно
func (r *Repository) Create(ctx context.Context, t *domain.Turn) (*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("turns").
		Columns(
			"turn_date",
			"start_time",
			"duration_minutes",
			"service_type",
			"status",
			"client_id",
			"slot_id",
			"admin_id",
			"notes",
		).
		Values(
			t.Date,
			t.StartTime,
			t.DurationMinutes,
			t.ServiceType,
			t.Status,
			t.ClientID,
			t.SlotID,
			t.AdminID,
			t.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает турн по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(turnColumns...).
		From("turns").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := r.scanTurn(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTurnNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan turn: %v", ErrScanRow, err)
	}

	return t, nil
}

// GetWithFilter получает турны с гибкой фильтрацией по клиенту, дате,
// времени начала и статусу. Отмененные турны по умолчанию исключаются.
//
// Внутри транзакции с фильтром по дате выборка блокируется через FOR UPDATE -
// это используется при создании турна для защиты от двойного бронирования.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.TurnsFilter) ([]*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(turnColumns...).
		From("turns")

	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"turn_date": *filter.Date})
	}
	if filter.StartTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_time": *filter.StartTime})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	selectBuilder = selectBuilder.OrderBy("turn_date ASC, start_time ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
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

	return r.scanTurns(rows)
}

// SetConfirmed переводит турн в статус confirmed и записывает подтвердившего администратора
func (r *Repository) SetConfirmed(ctx context.Context, id int64, adminID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("turns").
		Set("status", domain.StatusConfirmed).
		Set("admin_id", adminID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetConfirmed", query, args)
}

// SetCancelled переводит турн в статус cancelled и фиксирует время отмены
func (r *Repository) SetCancelled(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("turns").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCancelled - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetCancelled", query, args)
}

// DeleteCancelledBefore физически удаляет отмененные турны с датой раньше cutoff
// Возвращает количество удаленных строк. Связанные уведомления не затрагиваются
func (r *Repository) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("turns").
		Where(squirrel.Eq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"turn_date": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCancelledBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCancelledBefore - execute delete: %v", ErrExecQuery, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCancelledBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return removed, nil
}

// GetStats возвращает количество турнов по статусам
func (r *Repository) GetStats(ctx context.Context) (*domain.TurnStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("turns").
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := &domain.TurnStats{}
	for rows.Next() {
		var status domain.TurnStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: GetStats - scan row: %v", ErrScanRow, err)
		}

		stats.Total += count
		switch status {
		case domain.StatusPending:
			stats.Pending = count
		case domain.StatusConfirmed:
			stats.Confirmed = count
		case domain.StatusCancelled:
			stats.Cancelled = count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStats - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

// execExpectingRow выполняет update и проверяет, что строка была затронута
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrTurnNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTurn сканирует одну строку в domain.Turn
func (r *Repository) scanTurn(row rowScanner) (*domain.Turn, error) {
	var t domain.Turn
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.Date,
		&t.StartTime,
		&t.DurationMinutes,
		&t.ServiceType,
		&t.Status,
		&t.ClientID,
		&t.SlotID,
		&t.AdminID,
		&t.Notes,
		&t.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

// scanTurns сканирует результаты запроса в слайс турнов
func (r *Repository) scanTurns(rows *sql.Rows) ([]*domain.Turn, error) {
	turns := make([]*domain.Turn, 0)

	for rows.Next() {
		t, err := r.scanTurn(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTurns - scan row: %v", ErrScanRow, err)
		}
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTurns - rows error: %v", ErrScanRow, err)
	}

	return turns, nil
}
