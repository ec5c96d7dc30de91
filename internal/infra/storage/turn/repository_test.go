package turn

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func turnRows(turns ...*domain.Turn) *sqlmock.Rows {
	rows := sqlmock.NewRows(turnColumns)
	for _, t := range turns {
		var adminID, notes, cancelledAt interface{}
		if t.AdminID != nil {
			adminID = *t.AdminID
		}
		if t.Notes != nil {
			notes = *t.Notes
		}
		if t.CancelledAt != nil {
			cancelledAt = *t.CancelledAt
		}

		rows.AddRow(
			t.ID, t.Date, string(t.StartTime), t.DurationMinutes, t.ServiceType,
			string(t.Status), t.ClientID, t.SlotID, adminID, notes,
			cancelledAt, t.CreatedAt, t.UpdatedAt,
		)
	}
	return rows
}

func sampleTurn() *domain.Turn {
	return &domain.Turn{
		ID:              1,
		Date:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 120,
		ServiceType:     "standard_cleaning",
		Status:          domain.StatusPending,
		ClientID:        7,
		SlotID:          3,
		CreatedAt:       time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepository(t)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO turns").
		WithArgs(
			time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			"10:00", 120, "standard_cleaning", "pending",
			int64(7), int64(3), nil, nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	created, err := repo.Create(context.Background(), &domain.Turn{
		Date:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 120,
		ServiceType:     "standard_cleaning",
		Status:          domain.StatusPending,
		ClientID:        7,
		SlotID:          3,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepository(t)
	expected := sampleTurn()

	mock.ExpectQuery("SELECT .+ FROM turns WHERE id = ").
		WithArgs(int64(1)).
		WillReturnRows(turnRows(expected))

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, expected.ID, got.ID)
	assert.Equal(t, expected.StartTime, got.StartTime)
	assert.Equal(t, expected.Status, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT .+ FROM turns WHERE id = ").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTurnNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetWithFilter(t *testing.T) {
	repo, mock := newMockRepository(t)

	clientID := int64(7)
	// без явного статуса отмененные турны исключаются
	mock.ExpectQuery("SELECT .+ FROM turns WHERE client_id = .+ AND status <> .+ ORDER BY turn_date ASC, start_time ASC").
		WithArgs(clientID, "cancelled").
		WillReturnRows(turnRows(sampleTurn()))

	turns, err := repo.GetWithFilter(context.Background(), domain.TurnsFilter{ClientID: &clientID})
	require.NoError(t, err)

	require.Len(t, turns, 1)
	assert.Equal(t, int64(1), turns[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetConfirmed(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("UPDATE turns SET status = .+ admin_id = .+ updated_at = NOW").
		WithArgs("confirmed", int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetConfirmed(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetConfirmed_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("UPDATE turns").
		WithArgs("confirmed", int64(5), int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetConfirmed(context.Background(), 404, 5)
	assert.ErrorIs(t, err, ErrTurnNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetCancelled(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("UPDATE turns SET status = .+ cancelled_at = NOW").
		WithArgs("cancelled", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetCancelled(context.Background(), 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteCancelledBefore(t *testing.T) {
	repo, mock := newMockRepository(t)

	cutoff := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM turns WHERE status = .+ AND turn_date < ").
		WithArgs("cancelled", cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteCancelledBefore(context.Background(), cutoff)
	require.NoError(t, err)

	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetStats(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT status, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 2).
			AddRow("confirmed", 3).
			AddRow("cancelled", 1))

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 3, stats.Confirmed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
