package slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/slot"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/slots/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *slot.MemoryRepository) {
	repo := slot.NewMemoryRepository()
	return NewService(repo, nopLogger{}), repo
}

func createSlotRequest() *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		Date:        "2026-09-01",
		StartTime:   "09:00",
		EndTime:     "13:00",
		Zone:        "north",
		ServiceType: "standard_cleaning",
	}
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), createSlotRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "13:00", resp.EndTime)
	assert.Equal(t, 240, resp.DurationMinutes)
	assert.True(t, resp.Available)
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*models.CreateSlotRequest)
	}{
		{name: "bad date", mutate: func(r *models.CreateSlotRequest) { r.Date = "01.09.2026" }},
		{name: "bad start time", mutate: func(r *models.CreateSlotRequest) { r.StartTime = "9am" }},
		{name: "bad end time", mutate: func(r *models.CreateSlotRequest) { r.EndTime = "25:00" }},
		{name: "start equals end", mutate: func(r *models.CreateSlotRequest) { r.EndTime = r.StartTime }},
		{name: "start after end", mutate: func(r *models.CreateSlotRequest) { r.StartTime = "14:00" }},
		{name: "empty zone", mutate: func(r *models.CreateSlotRequest) { r.Zone = "" }},
		{name: "empty service type", mutate: func(r *models.CreateSlotRequest) { r.ServiceType = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createSlotRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_List(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createSlotRequest())
	require.NoError(t, err)

	south := createSlotRequest()
	south.Zone = "south"
	_, err = svc.Create(ctx, south)
	require.NoError(t, err)

	resp, err := svc.List(ctx, &models.ListSlotsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	zone := "south"
	resp, err = svc.List(ctx, &models.ListSlotsRequest{Zone: &zone})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "south", resp.Slots[0].Zone)

	badDate := "tomorrow"
	_, err = svc.List(ctx, &models.ListSlotsRequest{Date: &badDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createSlotRequest())
	require.NoError(t, err)

	endTime := "15:00"
	zone := "center"
	resp, err := svc.Update(ctx, created.ID, &models.UpdateSlotRequest{
		EndTime: &endTime,
		Zone:    &zone,
	})
	require.NoError(t, err)

	assert.Equal(t, "15:00", resp.EndTime)
	assert.Equal(t, "center", resp.Zone)
	// нетронутые поля сохраняются
	assert.Equal(t, "09:00", resp.StartTime)
}

func TestService_Update_InvalidWindow(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createSlotRequest())
	require.NoError(t, err)

	// новое время конца раньше существующего начала
	endTime := "08:00"
	_, err = svc.Update(ctx, created.ID, &models.UpdateSlotRequest{EndTime: &endTime})
	assert.ErrorIs(t, err, ErrInvalidInput)

	badStart := "morning"
	_, err = svc.Update(ctx, created.ID, &models.UpdateSlotRequest{StartTime: &badStart})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newTestService()

	zone := "south"
	_, err := svc.Update(context.Background(), 999, &models.UpdateSlotRequest{Zone: &zone})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_BlockUnblock(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createSlotRequest())
	require.NoError(t, err)

	resp, err := svc.Block(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, resp.Available)

	// повторная блокировка - ошибка состояния
	_, err = svc.Block(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAlreadyBlocked)

	resp, err = svc.Unblock(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, resp.Available)

	_, err = svc.Unblock(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAlreadyFree)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Available)
}

func TestService_Block_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Block(context.Background(), 999)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_Delete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createSlotRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_Delete_Occupied(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createSlotRequest())
	require.NoError(t, err)

	_, err = svc.Block(ctx, created.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrSlotOccupied)
}

func TestService_Delete_NotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
