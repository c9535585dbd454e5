package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotline/bookingengine/internal/domain"
	"github.com/slotline/bookingengine/internal/events"
	settingsRepo "github.com/slotline/bookingengine/internal/infra/storage/settings"
	"github.com/slotline/bookingengine/pkg/ptr"
	"github.com/slotline/bookingengine/pkg/types"
)

var (
	testNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
)

// Фейки

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	nextID    int64
	createErr error
	filterErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = testNow
	b.UpdatedAt = testNow
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, filter domain.CalendarFilter) ([]*domain.Booking, error) {
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BusinessID != filter.BusinessID {
			continue
		}
		if filter.StartDate != nil && b.BookingDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(*filter.EndDate) {
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

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	events []events.Event
}

func (f *fakePublisher) Publish(_ context.Context, event events.Event) {
	f.events = append(f.events, event)
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(bookingRepo *fakeBookingRepo, settings *fakeSettingsRepo) (*UseCase, *fakePublisher) {
	publisher := &fakePublisher{}
	uc := NewUseCase(bookingRepo, settings, &fakeTxManager{}, publisher, &nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc, publisher
}

func defaultSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: &domain.BookingSettings{
			BusinessID:        1,
			AdvancePercentage: 20,
		},
		hours: &domain.BusinessHours{
			BusinessID:          1,
			OpenTime:            "09:00",
			CloseTime:           "18:00",
			SlotDurationMinutes: 60,
		},
		services: map[int64]*domain.Service{
			10: {ID: 10, BusinessID: 1, Name: "Massage", DurationMinutes: 60, CapacityPerSlot: 2, Price: ptr.Ptr(1000.0)},
		},
	}
}

func validRequest() *Request {
	return &Request{
		BusinessID:    1,
		CustomerName:  "Anna",
		CustomerPhone: "+79001234567",
		Date:          testDate,
		StartTime:     "10:00",
		ServiceID:     ptr.Ptr(int64(10)),
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	uc, publisher := newTestUseCase(&fakeBookingRepo{}, defaultSettingsRepo())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.InDelta(t, 1000.0, resp.ServicePrice, 0.001)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.TypeBookingCreated, publisher.events[0].Type)
	assert.Equal(t, resp.ID, publisher.events[0].BookingID)
}

func TestExecute_AutoConfirm(t *testing.T) {
	settings := defaultSettingsRepo()
	settings.settings.AutoConfirm = true

	uc, _ := newTestUseCase(&fakeBookingRepo{}, settings)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_AutoConfirmSuppressedByRequireAdvance(t *testing.T) {
	settings := defaultSettingsRepo()
	settings.settings.AutoConfirm = true
	settings.settings.RequireAdvance = true

	uc, _ := newTestUseCase(&fakeBookingRepo{}, settings)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_SlotCapacityExhausted(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc, _ := newTestUseCase(repo, defaultSettingsRepo())
	ctx := context.Background()

	// Capacity услуги = 2: два бронирования проходят, третье получает отказ
	_, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	_, err = uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Соседний слот при этом свободен
	req := validRequest()
	req.StartTime = "11:00"
	_, err = uc.Execute(ctx, req)
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingFreesSpot(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc, _ := newTestUseCase(repo, defaultSettingsRepo())
	ctx := context.Background()

	_, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	_, err = uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	// Отмена одного из бронирований освобождает место
	repo.bookings[0].Status = domain.StatusCancelled

	_, err = uc.Execute(ctx, validRequest())
	assert.NoError(t, err)
}

func TestExecute_DailyLimit(t *testing.T) {
	settings := defaultSettingsRepo()
	settings.settings.OneBookingPerDay = true

	uc, _ := newTestUseCase(&fakeBookingRepo{}, settings)
	ctx := context.Background()

	_, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	// Второе бронирование на ту же дату отклоняется даже в свободный слот
	req := validRequest()
	req.StartTime = "15:00"
	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)

	// Другая дата свободна
	req = validRequest()
	req.Date = testDate.AddDate(0, 0, 1)
	_, err = uc.Execute(ctx, req)
	assert.NoError(t, err)
}

func TestExecute_InvalidTimeSlot(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{}, defaultSettingsRepo())

	req := validRequest()
	req.StartTime = "10:17"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PastDate(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{}, defaultSettingsRepo())

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayAllowed(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{}, defaultSettingsRepo())

	req := validRequest()
	req.Date = testNow
	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ServiceRequired(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{}, defaultSettingsRepo())

	req := validRequest()
	req.ServiceID = nil
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExecute_UnknownService(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{}, defaultSettingsRepo())

	req := validRequest()
	req.ServiceID = ptr.Ptr(int64(99))
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{}, defaultSettingsRepo())

	req := validRequest()
	req.BusinessID = 2
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_NoHoursMeansClosed(t *testing.T) {
	settings := defaultSettingsRepo()
	settings.hours = nil

	uc, _ := newTestUseCase(&fakeBookingRepo{}, settings)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusinessClosed)
}

func TestExecute_FullDayMode(t *testing.T) {
	settings := defaultSettingsRepo()
	settings.settings.FullDayMode = true

	uc, _ := newTestUseCase(&fakeBookingRepo{}, settings)
	ctx := context.Background()

	// Время начала в full-day режиме не указывается
	req := validRequest()
	req.ServiceID = nil
	req.StartTime = ""

	resp, err := uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("00:00"), resp.StartTime)
	assert.Equal(t, domain.FullDayDurationMinutes, resp.DurationMinutes)
	assert.Nil(t, resp.ServiceID)

	// Второй клиент на те же сутки не помещается
	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Конкретное время в full-day режиме отклоняется
	req2 := validRequest()
	req2.ServiceID = nil
	req2.StartTime = "10:00"
	req2.Date = testDate.AddDate(0, 0, 1)
	_, err = uc.Execute(ctx, req2)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_FullDayModeRejectsService(t *testing.T) {
	settings := defaultSettingsRepo()
	settings.settings.FullDayMode = true

	repo := &fakeBookingRepo{}
	uc, publisher := newTestUseCase(repo, settings)
	ctx := context.Background()

	// Бронирование с услугой не совпало бы с синтетическим слотом и никогда
	// не учитывалось бы при подсчёте занятости - сколько ни шли таких
	// запросов, ни один не должен пройти
	req := validRequest()
	req.StartTime = ""

	for i := 0; i < 3; i++ {
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Empty(t, repo.bookings)
	assert.Empty(t, publisher.events)

	// Сутки по-прежнему вмещают ровно одно бронирование
	req.ServiceID = nil
	_, err := uc.Execute(ctx, req)
	require.NoError(t, err)
	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	require.Len(t, repo.bookings, 1)
	assert.Nil(t, repo.bookings[0].ServiceID)
}

func TestExecute_RetryableQueryFailure(t *testing.T) {
	// Serialization failure при выборке дня внутри транзакции - это сбой
	// атомарного шага admit-and-create: наружу уходит ErrPersistence, а код
	// ошибки драйвера остаётся различимым сквозь все обёртки для retry-логики
	repo := &fakeBookingRepo{filterErr: &pq.Error{Code: "40001"}}
	uc, publisher := newTestUseCase(repo, defaultSettingsRepo())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPersistence)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	assert.Empty(t, publisher.events)
}

func TestExecute_PersistenceFailure(t *testing.T) {
	repo := &fakeBookingRepo{createErr: errors.New("connection reset")}
	uc, publisher := newTestUseCase(repo, defaultSettingsRepo())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, publisher.events)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{}, defaultSettingsRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "no business", mutate: func(r *Request) { r.BusinessID = 0 }},
		{name: "no name", mutate: func(r *Request) { r.CustomerName = "" }},
		{name: "no phone", mutate: func(r *Request) { r.CustomerPhone = "" }},
		{name: "no date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad time", mutate: func(r *Request) { r.StartTime = "1000" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(ctx, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
