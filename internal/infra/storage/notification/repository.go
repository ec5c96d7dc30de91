package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	"github.com/m04kA/SISLIM-TurnoService/pkg/dbmetrics"
	"github.com/m04kA/SISLIM-TurnoService/pkg/psqlbuilder"
)

var notificationColumns = []string{
	"id",
	"turn_id",
	"kind",
	"message",
	"sent",
	"sent_at",
	"created_at",
}

// Repository PostgreSQL-репозиторий уведомлений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись уведомления
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns(
			"turn_id",
			"kind",
			"message",
			"sent",
			"sent_at",
		).
		Values(
			n.TurnID,
			n.Kind,
			n.Message,
			n.Sent,
			n.SentAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&n.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	n.CreatedAt = createdAt.Time

	return n, nil
}

// GetByID получает уведомление по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	n, err := r.scanNotification(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan notification: %v", ErrScanRow, err)
	}

	return n, nil
}

// GetWithFilter получает уведомления с фильтрацией по турну, типу
// и признаку отправки
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.NotificationsFilter) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(notificationColumns...).
		From("notifications")

	if filter.TurnID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"turn_id": *filter.TurnID})
	}
	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.PendingOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"sent": false})
	}

	query, args, err := selectBuilder.OrderBy("created_at ASC, id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanNotifications(rows)
}

// MarkSent помечает уведомление отправленным с фиксацией времени отправки
func (r *Repository) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("sent", true).
		Set("sent_at", sentAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkSent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// DeleteSentBefore удаляет отправленные уведомления старше cutoff
// Возвращает количество удаленных строк
func (r *Repository) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("notifications").
		Where(squirrel.Eq{"sent": true}).
		Where(squirrel.Lt{"sent_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteSentBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteSentBefore - execute delete: %v", ErrExecQuery, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteSentBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return removed, nil
}

// GetStats возвращает количество уведомлений по типам и статусу отправки
func (r *Repository) GetStats(ctx context.Context) (*domain.NotificationStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("kind", "sent", "COUNT(*)").
		From("notifications").
		GroupBy("kind", "sent").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := &domain.NotificationStats{}
	for rows.Next() {
		var kind domain.NotificationKind
		var sent bool
		var count int
		if err := rows.Scan(&kind, &sent, &count); err != nil {
			return nil, fmt.Errorf("%w: GetStats - scan row: %v", ErrScanRow, err)
		}

		stats.Total += count
		if sent {
			stats.Sent += count
		} else {
			stats.Pending += count
		}

		switch kind {
		case domain.KindConfirmation:
			stats.Confirmations += count
		case domain.KindAlert:
			stats.Alerts += count
		case domain.KindReminder:
			stats.Reminders += count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStats - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanNotification(row rowScanner) (*domain.Notification, error) {
	var n domain.Notification
	var createdAt sql.NullTime

	err := row.Scan(
		&n.ID,
		&n.TurnID,
		&n.Kind,
		&n.Message,
		&n.Sent,
		&n.SentAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	n.CreatedAt = createdAt.Time

	return &n, nil
}

func (r *Repository) scanNotifications(rows *sql.Rows) ([]*domain.Notification, error) {
	notifications := make([]*domain.Notification, 0)

	for rows.Next() {
		n, err := r.scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanNotifications - scan row: %v", ErrScanRow, err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanNotifications - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}
