package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotline/bookingengine/internal/domain"
	settingsRepo "github.com/slotline/bookingengine/internal/infra/storage/settings"
	"github.com/slotline/bookingengine/internal/schedule"
)

// UseCase use case получения доступных слотов.
// Доступность - чистая функция от (настройки, услуги, часы, существующие
// бронирования) и пересчитывается на каждый запрос; никакого кеша занятости.
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, date=%s, service=%v",
		req.BusinessID, req.Date.Format(domain.DateFormat), req.ServiceID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	settings, err := uc.settingsRepo.GetSettings(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d has no settings", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	var service *domain.Service
	if settings.FullDayMode {
		// День бронируется целиком, услуга в этом режиме не участвует
		if req.ServiceID != nil {
			uc.logger.Warn("GetAvailableSlots: serviceId=%d rejected in full-day mode", *req.ServiceID)
			return nil, fmt.Errorf("%w: serviceId is not allowed in full-day mode", ErrValidation)
		}
	} else {
		if req.ServiceID == nil {
			return nil, fmt.Errorf("%w: serviceId is required", ErrValidation)
		}
		service, err = uc.settingsRepo.GetService(ctx, req.BusinessID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	var hours *domain.BusinessHours
	if !settings.FullDayMode {
		hours, err = uc.settingsRepo.GetHours(ctx, req.BusinessID)
		if err != nil && !errors.Is(err, settingsRepo.ErrHoursNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get hours: %v", err)
			return nil, fmt.Errorf("%w: failed to get hours: %v", ErrInternal, err)
		}
	}

	slots, err := schedule.Generate(req.Date, hours, settings, service)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		uc.logger.Info("GetAvailableSlots: business id=%d is closed on %s",
			req.BusinessID, req.Date.Format(domain.DateFormat))
		return &Response{
			Date:       req.Date,
			BusinessID: req.BusinessID,
			ServiceID:  req.ServiceID,
			Slots:      []Slot{},
		}, nil
	}

	filter := domain.CalendarFilter{
		BusinessID:       req.BusinessID,
		StartDate:        &req.Date,
		EndDate:          &req.Date,
		IncludeCancelled: false,
	}

	bookings, err := uc.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	occupied := schedule.Occupy(slots, bookings)

	// oneBookingPerDay: любое активное бронирование дня закрывает все слоты
	dayClosed := settings.OneBookingPerDay && schedule.HasActiveOnDate(bookings)

	result := make([]Slot, len(occupied))
	for i := range occupied {
		remaining := occupied[i].Remaining()
		if dayClosed {
			remaining = 0
		}
		result[i] = Slot{
			StartTime:         occupied[i].StartTime,
			EndTime:           occupied[i].EndTime,
			DurationMinutes:   durationOf(&occupied[i]),
			RemainingCapacity: remaining,
			Capacity:          occupied[i].Capacity,
		}
	}

	uc.logger.Info("GetAvailableSlots: %d slots for business=%d on %s",
		len(result), req.BusinessID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Slots:      result,
	}, nil
}

func durationOf(slot *domain.Slot) int {
	startMin, err := slot.StartTime.Minutes()
	if err != nil {
		return 0
	}
	if slot.EndTime == "24:00" {
		return 24*60 - startMin
	}
	endMin, err := slot.EndTime.Minutes()
	if err != nil {
		return 0
	}
	return endMin - startMin
}
