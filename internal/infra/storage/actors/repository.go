package actors

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

// Repository PostgreSQL-репозиторий клиентов и администраторов
// Роли не наследуются друг от друга - это две независимые таблицы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateClient создает клиента
func (r *Repository) CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("name", "email", "phone", "address").
		Values(c.Name, c.Email, c.Phone, c.Address).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateClient - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateClient - execute insert: %v", ErrExecQuery, err)
	}
	c.CreatedAt = createdAt.Time

	return c, nil
}

// GetClientByID получает клиента по ID
func (r *Repository) GetClientByID(ctx context.Context, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "address", "created_at").
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClientByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetClientByID - scan client: %v", ErrScanRow, err)
	}
	c.CreatedAt = createdAt.Time

	return &c, nil
}

// ListClients получает всех клиентов
func (r *Repository) ListClients(ctx context.Context) ([]*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "address", "created_at").
		From("clients").
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListClients - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClients - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		var c domain.Client
		var createdAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListClients - scan client: %v", ErrScanRow, err)
		}
		c.CreatedAt = createdAt.Time
		clients = append(clients, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClients - iterate rows: %v", ErrScanRow, err)
	}

	return clients, nil
}

// CreateAdmin создает администратора
func (r *Repository) CreateAdmin(ctx context.Context, a *domain.Administrator) (*domain.Administrator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("administrators").
		Columns("name", "email", "phone").
		Values(a.Name, a.Email, a.Phone).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateAdmin - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateAdmin - execute insert: %v", ErrExecQuery, err)
	}
	a.CreatedAt = createdAt.Time

	return a, nil
}

// GetAdminByID получает администратора по ID
func (r *Repository) GetAdminByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "created_at").
		From("administrators").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAdminByID - build select query: %v", ErrBuildQuery, err)
	}

	var a domain.Administrator
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAdminByID - scan administrator: %v", ErrScanRow, err)
	}
	a.CreatedAt = createdAt.Time

	return &a, nil
}

// ListAdmins получает всех администраторов
func (r *Repository) ListAdmins(ctx context.Context) ([]*domain.Administrator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "created_at").
		From("administrators").
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAdmins - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAdmins - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	admins := make([]*domain.Administrator, 0)
	for rows.Next() {
		var a domain.Administrator
		var createdAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListAdmins - scan administrator: %v", ErrScanRow, err)
		}
		a.CreatedAt = createdAt.Time
		admins = append(admins, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAdmins - iterate rows: %v", ErrScanRow, err)
	}

	return admins, nil
}
