package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotline/bookingengine/internal/domain"
	settingsRepo "github.com/slotline/bookingengine/internal/infra/storage/settings"
	"github.com/slotline/bookingengine/internal/service/settings/models"
	"github.com/slotline/bookingengine/pkg/ptr"
)

type fakeRepo struct {
	settings *domain.BookingSettings
	hours    *domain.BusinessHours
	services map[int64]*domain.Service
	nextID   int64
}

func (f *fakeRepo) GetSettings(_ context.Context, businessID int64) (*domain.BookingSettings, error) {
	if f.settings == nil || f.settings.BusinessID != businessID {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeRepo) UpsertSettings(_ context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error) {
	f.settings = s
	return s, nil
}

func (f *fakeRepo) GetHours(_ context.Context, businessID int64) (*domain.BusinessHours, error) {
	if f.hours == nil {
		return nil, settingsRepo.ErrHoursNotFound
	}
	return f.hours, nil
}

func (f *fakeRepo) UpsertHours(_ context.Context, h *domain.BusinessHours) (*domain.BusinessHours, error) {
	f.hours = h
	return h, nil
}

func (f *fakeRepo) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, settingsRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeRepo) ListServices(_ context.Context, _ int64) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0, len(f.services))
	for _, svc := range f.services {
		result = append(result, svc)
	}
	return result, nil
}

func (f *fakeRepo) CountServices(_ context.Context, _ int64) (int, error) {
	return len(f.services), nil
}

func (f *fakeRepo) CreateService(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	f.nextID++
	svc.ID = f.nextID
	if f.services == nil {
		f.services = make(map[int64]*domain.Service)
	}
	f.services[svc.ID] = svc
	return svc, nil
}

func (f *fakeRepo) UpdateService(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	if _, ok := f.services[svc.ID]; !ok {
		return nil, settingsRepo.ErrServiceNotFound
	}
	f.services[svc.ID] = svc
	return svc, nil
}

func (f *fakeRepo) DeleteService(_ context.Context, _, serviceID int64) error {
	if _, ok := f.services[serviceID]; !ok {
		return settingsRepo.ErrServiceNotFound
	}
	delete(f.services, serviceID)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, &fakeTxManager{}, &nopLogger{})
}

func TestUpdateSettings(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	resp, err := svc.UpdateSettings(context.Background(), 1, &models.UpdateSettingsRequest{
		RequireAdvance:    true,
		AdvancePercentage: 30,
		OneBookingPerDay:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.BusinessID)
	assert.Equal(t, 30, resp.AdvancePercentage)
	assert.True(t, resp.OneBookingPerDay)
}

func TestUpdateSettings_RejectsBadPercentage(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	for _, pct := range []int{0, -5, 101} {
		_, err := svc.UpdateSettings(ctx, 1, &models.UpdateSettingsRequest{
			AdvancePercentage: pct,
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "percentage %d", pct)
	}
}

func TestUpdateHours(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	resp, err := svc.UpdateHours(context.Background(), 1, &models.UpdateHoursRequest{
		OpenTime:            "09:00",
		CloseTime:           "18:00",
		SlotDurationMinutes: 60,
		BufferMinutes:       10,
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.OpenTime)
	assert.Equal(t, "18:00", resp.CloseTime)
}

func TestUpdateHours_Validation(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.UpdateHoursRequest
	}{
		{name: "bad open time", req: models.UpdateHoursRequest{OpenTime: "9am", CloseTime: "18:00", SlotDurationMinutes: 60}},
		{name: "close before open", req: models.UpdateHoursRequest{OpenTime: "18:00", CloseTime: "09:00", SlotDurationMinutes: 60}},
		{name: "close equals open", req: models.UpdateHoursRequest{OpenTime: "09:00", CloseTime: "09:00", SlotDurationMinutes: 60}},
		{name: "slot too short", req: models.UpdateHoursRequest{OpenTime: "09:00", CloseTime: "18:00", SlotDurationMinutes: 1}},
		{name: "slot too long", req: models.UpdateHoursRequest{OpenTime: "09:00", CloseTime: "18:00", SlotDurationMinutes: 600}},
		{name: "negative buffer", req: models.UpdateHoursRequest{OpenTime: "09:00", CloseTime: "18:00", SlotDurationMinutes: 60, BufferMinutes: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateHours(ctx, 1, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateService_Validation(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.CreateService(ctx, 1, &models.CreateServiceRequest{
		Name: "", DurationMinutes: 60, CapacityPerSlot: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateService(ctx, 1, &models.CreateServiceRequest{
		Name: "Massage", DurationMinutes: 60, CapacityPerSlot: 1, Price: ptr.Ptr(-100.0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	created, err := svc.CreateService(ctx, 1, &models.CreateServiceRequest{
		Name: "Massage", DurationMinutes: 60, CapacityPerSlot: 2, Price: ptr.Ptr(1000.0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestUpdateService(t *testing.T) {
	repo := &fakeRepo{
		services: map[int64]*domain.Service{
			10: {ID: 10, BusinessID: 1, Name: "Massage", DurationMinutes: 60, CapacityPerSlot: 1},
		},
	}
	svc := newTestService(repo)
	ctx := context.Background()

	resp, err := svc.UpdateService(ctx, 1, 10, &models.UpdateServiceRequest{
		Name: "Massage deluxe", DurationMinutes: 90, CapacityPerSlot: 2, Price: ptr.Ptr(2000.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Massage deluxe", resp.Name)
	assert.Equal(t, 90, resp.DurationMinutes)

	_, err = svc.UpdateService(ctx, 1, 99, &models.UpdateServiceRequest{
		Name: "Ghost", DurationMinutes: 60, CapacityPerSlot: 1,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.UpdateService(ctx, 1, 10, &models.UpdateServiceRequest{
		Name: "", DurationMinutes: 60, CapacityPerSlot: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteService_LastServiceGuard(t *testing.T) {
	repo := &fakeRepo{
		settings: &domain.BookingSettings{BusinessID: 1},
		services: map[int64]*domain.Service{
			10: {ID: 10, BusinessID: 1, Name: "Massage", DurationMinutes: 60, CapacityPerSlot: 1},
		},
	}
	svc := newTestService(repo)
	ctx := context.Background()

	// Последнюю услугу не-full-day бизнеса удалить нельзя
	err := svc.DeleteService(ctx, 1, 10)
	assert.ErrorIs(t, err, ErrLastService)

	// В full-day режиме услуги опциональны, удаление разрешено
	repo.settings.FullDayMode = true
	err = svc.DeleteService(ctx, 1, 10)
	assert.NoError(t, err)
	assert.Empty(t, repo.services)
}

func TestDeleteService_NotFound(t *testing.T) {
	repo := &fakeRepo{settings: &domain.BookingSettings{BusinessID: 1}}
	svc := newTestService(repo)

	err := svc.DeleteService(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetConfiguration(t *testing.T) {
	repo := &fakeRepo{
		settings: &domain.BookingSettings{BusinessID: 1, RequireAdvance: true, AdvancePercentage: 50},
		hours: &domain.BusinessHours{
			BusinessID: 1, OpenTime: "09:00", CloseTime: "18:00", SlotDurationMinutes: 60,
		},
		services: map[int64]*domain.Service{
			10: {ID: 10, BusinessID: 1, Name: "Massage", DurationMinutes: 60, CapacityPerSlot: 1},
		},
	}
	svc := newTestService(repo)

	resp, err := svc.GetConfiguration(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.Settings.RequireAdvance)
	require.NotNil(t, resp.Hours)
	assert.Equal(t, "09:00", resp.Hours.OpenTime)
	assert.Len(t, resp.Services, 1)
}

func TestGetConfiguration_MissingHoursIsNotAnError(t *testing.T) {
	repo := &fakeRepo{settings: &domain.BookingSettings{BusinessID: 1}}
	svc := newTestService(repo)

	resp, err := svc.GetConfiguration(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, resp.Hours)
}

func TestGetConfiguration_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetConfiguration(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
