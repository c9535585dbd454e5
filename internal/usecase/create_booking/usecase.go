package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotline/bookingengine/internal/domain"
	"github.com/slotline/bookingengine/internal/events"
	settingsRepo "github.com/slotline/bookingengine/internal/infra/storage/settings"
	"github.com/slotline/bookingengine/internal/schedule"
	"github.com/slotline/bookingengine/pkg/types"
)

// UseCase use case создания бронирования: единственная точка, где появляются
// новые бронирования. Admission-проверка и вставка выполняются одной
// сериализуемой транзакцией (check-then-act гонка, см. репозиторий).
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: business=%d, date=%s, time=%s, service=%v",
		req.BusinessID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceID)

	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	var result *domain.Booking

	// 2. Admission + вставка в одной сериализуемой транзакции.
	// Настройки читаются внутри транзакции: переключение политики
	// (например, oneBookingPerDay) видно уже следующему решению.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		settings, err := uc.settingsRepo.GetSettings(txCtx, req.BusinessID)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Warn("CreateBooking: business id=%d has no settings", req.BusinessID)
				return ErrBusinessNotFound
			}
			uc.logger.Error("CreateBooking: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %w", ErrPersistence, err)
		}

		// 2.1. Услуга обязательна вне full-day режима; движок сам отклоняет
		// бронирование несуществующей услуги, не полагаясь на UI.
		// В full-day режиме услуга, наоборот, не указывается: день бронируется
		// целиком, и бронирование с serviceId не попало бы в синтетический
		// слот при подсчёте занятости.
		var service *domain.Service
		if settings.FullDayMode {
			if req.ServiceID != nil {
				uc.logger.Warn("CreateBooking: serviceId=%d rejected in full-day mode", *req.ServiceID)
				return fmt.Errorf("%w: serviceId is not allowed in full-day mode", ErrValidation)
			}
		} else {
			if req.ServiceID == nil {
				return fmt.Errorf("%w: serviceId is required", ErrValidation)
			}
			service, err = uc.settingsRepo.GetService(txCtx, req.BusinessID, *req.ServiceID)
			if err != nil {
				if errors.Is(err, settingsRepo.ErrServiceNotFound) {
					uc.logger.Warn("CreateBooking: service id=%d not found", *req.ServiceID)
					return ErrServiceNotFound
				}
				uc.logger.Error("CreateBooking: failed to get service id=%d: %v", *req.ServiceID, err)
				return fmt.Errorf("%w: failed to get service: %w", ErrPersistence, err)
			}
		}

		startTime, err := resolveStartTime(req.StartTime, settings)
		if err != nil {
			return err
		}

		// 2.2. Рабочие часы нужны только вне full-day режима
		var hours *domain.BusinessHours
		if !settings.FullDayMode {
			hours, err = uc.settingsRepo.GetHours(txCtx, req.BusinessID)
			if err != nil {
				if errors.Is(err, settingsRepo.ErrHoursNotFound) {
					uc.logger.Warn("CreateBooking: business id=%d has no working hours", req.BusinessID)
					return ErrBusinessClosed
				}
				uc.logger.Error("CreateBooking: failed to get hours: %v", err)
				return fmt.Errorf("%w: failed to get hours: %w", ErrPersistence, err)
			}
		}

		// 2.3. Выводим слоты дня и находим запрошенный
		slots, err := schedule.Generate(req.Date, hours, settings, service)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate slots: %v", err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
		if len(slots) == 0 {
			uc.logger.Warn("CreateBooking: business id=%d is closed on %s",
				req.BusinessID, req.Date.Format(domain.DateFormat))
			return ErrBusinessClosed
		}

		slot, ok := schedule.FindSlot(slots, startTime)
		if !ok {
			uc.logger.Warn("CreateBooking: time %s does not match any slot", startTime)
			return ErrInvalidTimeSlot
		}

		// 2.4. Все незанятые-местом бронирования дня, с блокировкой строк
		// (FOR UPDATE) до конца транзакции
		filter := domain.CalendarFilter{
			BusinessID:       req.BusinessID,
			StartDate:        &req.Date,
			EndDate:          &req.Date,
			IncludeCancelled: false,
		}

		bookings, err := uc.bookingRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrPersistence, err)
		}

		// 2.5. Дневная эксклюзивность и капасити слота - независимые проверки
		if settings.OneBookingPerDay && schedule.HasActiveOnDate(bookings) {
			uc.logger.Warn("CreateBooking: daily limit reached for business=%d on %s",
				req.BusinessID, req.Date.Format(domain.DateFormat))
			return ErrDailyLimitExceeded
		}

		booked := schedule.CountForSlot(slot, bookings)
		if booked >= slot.Capacity {
			uc.logger.Warn("CreateBooking: slot %s full, %d/%d spots taken",
				startTime, booked, slot.Capacity)
			return ErrSlotUnavailable
		}

		uc.logger.Info("CreateBooking: slot %s available, %d/%d spots taken",
			startTime, booked, slot.Capacity)

		servicePrice := 0.0
		durationMinutes := domain.FullDayDurationMinutes
		if service != nil {
			servicePrice = service.PriceOrZero()
			durationMinutes = service.DurationMinutes
		}

		newBooking := &domain.Booking{
			BusinessID:      req.BusinessID,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerEmail:   req.CustomerEmail,
			BookingDate:     req.Date,
			StartTime:       startTime,
			DurationMinutes: durationMinutes,
			ServiceID:       req.ServiceID,
			Status:          settings.InitialStatus(),
			ServicePrice:    servicePrice,
			Notes:           req.Notes,
		}

		// 2.6. Сбой вставки - отдельный вид ошибки: бронирование не потеряно
		// молча, вызывающая сторона может повторить
		created, err := uc.bookingRepo.Create(txCtx, newBooking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if isAdmissionError(err) {
			return nil, err
		}
		// Ошибка коммита сериализуемой транзакции - тоже сбой атомарного шага
		if !errors.Is(err, ErrInternal) && !errors.Is(err, ErrPersistence) {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s",
		result.ID, result.Status)

	uc.publisher.Publish(ctx, events.Event{
		Type:       events.TypeBookingCreated,
		BookingID:  result.ID,
		BusinessID: result.BusinessID,
		Status:     result.Status,
		OccurredAt: now,
	})

	return toResponse(result), nil
}

// resolveStartTime определяет фактическое время начала.
// В full-day режиме бронируется синтетический слот на все сутки: пустое время
// трактуется как его начало, любое другое время отклоняется.
func resolveStartTime(startTime types.TimeString, settings *domain.BookingSettings) (types.TimeString, error) {
	if settings.FullDayMode {
		if startTime.IsZero() || startTime == types.TimeString(domain.FullDayStartTime) {
			return types.TimeString(domain.FullDayStartTime), nil
		}
		return "", ErrInvalidTimeSlot
	}

	if startTime.IsZero() {
		return "", fmt.Errorf("%w: startTime is required", ErrValidation)
	}
	return startTime, nil
}

// isAdmissionError возвращает true для ошибок, являющихся осмысленным
// отказом admission-проверки, а не сбоем инфраструктуры
func isAdmissionError(err error) bool {
	for _, sentinel := range []error{
		ErrValidation,
		ErrBusinessNotFound,
		ErrServiceNotFound,
		ErrInvalidDate,
		ErrBusinessClosed,
		ErrInvalidTimeSlot,
		ErrSlotUnavailable,
		ErrDailyLimitExceeded,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		BusinessID:      b.BusinessID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		CustomerEmail:   b.CustomerEmail,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		ServiceID:       b.ServiceID,
		Status:          string(b.Status),
		ServicePrice:    b.ServicePrice,
		AdvancePaid:     b.AdvancePaid,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
