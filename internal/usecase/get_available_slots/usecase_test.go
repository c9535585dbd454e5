package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotline/bookingengine/internal/domain"
	settingsRepo "github.com/slotline/bookingengine/internal/infra/storage/settings"
	"github.com/slotline/bookingengine/pkg/ptr"
	"github.com/slotline/bookingengine/pkg/types"
)

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, filter domain.CalendarFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BusinessID != filter.BusinessID {
			continue
		}
		if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeSettingsRepo struct {
	settings *domain.BookingSettings
	hours    *domain.BusinessHours
	services map[int64]*domain.Service
}

func (f *fakeSettingsRepo) GetSettings(_ context.Context, businessID int64) (*domain.BookingSettings, error) {
	if f.settings == nil || f.settings.BusinessID != businessID {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) GetHours(_ context.Context, businessID int64) (*domain.BusinessHours, error) {
	if f.hours == nil {
		return nil, settingsRepo.ErrHoursNotFound
	}
	return f.hours, nil
}

func (f *fakeSettingsRepo) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, settingsRepo.ErrServiceNotFound
	}
	return svc, nil
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func defaultSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: &domain.BookingSettings{BusinessID: 1},
		hours: &domain.BusinessHours{
			BusinessID:          1,
			OpenTime:            "09:00",
			CloseTime:           "12:00",
			SlotDurationMinutes: 60,
		},
		services: map[int64]*domain.Service{
			10: {ID: 10, BusinessID: 1, Name: "Haircut", DurationMinutes: 60, CapacityPerSlot: 2},
		},
	}
}

func validRequest() *Request {
	return &Request{
		BusinessID: 1,
		Date:       testDate,
		ServiceID:  ptr.Ptr(int64(10)),
	}
}

func TestExecute_ReturnsSlotsWithOccupancy(t *testing.T) {
	serviceID := int64(10)
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{BusinessID: 1, BookingDate: testDate, StartTime: "09:00", ServiceID: &serviceID, Status: domain.StatusConfirmed},
			{BusinessID: 1, BookingDate: testDate, StartTime: "10:00", ServiceID: &serviceID, Status: domain.StatusConfirmed},
			{BusinessID: 1, BookingDate: testDate, StartTime: "10:00", ServiceID: &serviceID, Status: domain.StatusPending},
		},
	}

	uc := NewUseCase(repo, defaultSettingsRepo(), &nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// 09:00-12:00 по 60 минут = 3 слота
	require.Len(t, resp.Slots, 3)

	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 1, resp.Slots[0].RemainingCapacity)
	assert.Equal(t, 2, resp.Slots[0].Capacity)

	// Слот 10:00 полностью занят (pending тоже занимает место)
	assert.Equal(t, 0, resp.Slots[1].RemainingCapacity)

	// Слот 11:00 свободен
	assert.Equal(t, 2, resp.Slots[2].RemainingCapacity)
	assert.Equal(t, 60, resp.Slots[2].DurationMinutes)
}

func TestExecute_CancelledDoesNotOccupy(t *testing.T) {
	serviceID := int64(10)
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{BusinessID: 1, BookingDate: testDate, StartTime: "09:00", ServiceID: &serviceID, Status: domain.StatusCancelled},
		},
	}

	uc := NewUseCase(repo, defaultSettingsRepo(), &nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Slots[0].RemainingCapacity)
}

func TestExecute_OneBookingPerDayClosesAllSlots(t *testing.T) {
	settings := defaultSettingsRepo()
	settings.settings.OneBookingPerDay = true

	serviceID := int64(10)
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{BusinessID: 1, BookingDate: testDate, StartTime: "09:00", ServiceID: &serviceID, Status: domain.StatusConfirmed},
		},
	}

	uc := NewUseCase(repo, settings, &nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.Equal(t, 0, slot.RemainingCapacity, "slot %s", slot.StartTime)
	}
}

func TestExecute_ClosedDayReturnsEmptyList(t *testing.T) {
	settings := defaultSettingsRepo()
	settings.hours = nil

	uc := NewUseCase(&fakeBookingRepo{}, settings, &nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_FullDaySlot(t *testing.T) {
	settings := defaultSettingsRepo()
	settings.settings.FullDayMode = true

	uc := NewUseCase(&fakeBookingRepo{}, settings, &nopLogger{})

	req := validRequest()
	req.ServiceID = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("00:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("24:00"), resp.Slots[0].EndTime)
	assert.Equal(t, domain.FullDayDurationMinutes, resp.Slots[0].DurationMinutes)
	assert.Equal(t, 1, resp.Slots[0].Capacity)

	// Услуга в full-day режиме не участвует в расписании
	req.ServiceID = ptr.Ptr(int64(10))
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, defaultSettingsRepo(), &nopLogger{})

	req := validRequest()
	req.BusinessID = 2
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_ServiceRequired(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, defaultSettingsRepo(), &nopLogger{})

	req := validRequest()
	req.ServiceID = nil
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}
