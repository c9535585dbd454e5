package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slotline/bookingengine/internal/domain"
	"github.com/slotline/bookingengine/internal/events"
	bookingRepo "github.com/slotline/bookingengine/internal/infra/storage/booking"
	settingsRepo "github.com/slotline/bookingengine/internal/infra/storage/settings"
	"github.com/slotline/bookingengine/internal/service/bookings/models"
	"github.com/slotline/bookingengine/pkg/types"
)

// Service владеет жизненным циклом бронирования после создания: все переходы
// статусов проходят только здесь, по явной таблице переходов domain.CanTransition.
// Он же отвечает за read-сторону календаря; по календарным выборкам нельзя
// судить о доступности - единственный источник истины по занятости это
// usecase get_available_slots.
type Service struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// ChangeStatus переводит бронирование в новый статус.
// Смена статуса на cancelled идемпотентна: повторная отмена - no-op.
// Остальные переходы проверяются по таблице переходов и policy-гейтам:
//   - pending -> confirmed: advancePaid >= servicePrice * advancePercentage / 100,
//     если политика требует предоплату (настройки читаются в момент перехода);
//   - confirmed -> completed: дата бронирования не в будущем;
//   - confirmed -> no_show: слот уже закончился.
func (s *Service) ChangeStatus(ctx context.Context, bookingID int64, req *models.ChangeStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("ChangeStatus: booking id=%d -> %s", bookingID, req.Status)

	newStatus, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("ChangeStatus: unknown status=%s for booking id=%d", req.Status, bookingID)
		return nil, ErrInvalidStatus
	}

	var updated *domain.Booking
	var changed bool

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: ChangeStatus - repository error: %v", ErrInternal, err)
		}

		// Повторная отмена - no-op, не ошибка
		if newStatus == domain.StatusCancelled && booking.IsCancelled() {
			updated = booking
			return nil
		}

		if !domain.CanTransition(booking.Status, newStatus) {
			s.logger.Warn("ChangeStatus: transition %s -> %s is not allowed for booking id=%d",
				booking.Status, newStatus, bookingID)
			return ErrInvalidTransition
		}

		if err := s.checkTransitionGate(txCtx, booking, newStatus); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: ChangeStatus - repository error: %v", ErrInternal, err)
		}

		booking.Status = newStatus
		updated = booking
		changed = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("ChangeStatus: booking id=%d is now %s", bookingID, updated.Status)

	if changed {
		s.publisher.Publish(ctx, events.Event{
			Type:       events.TypeBookingStatusChanged,
			BookingID:  updated.ID,
			BusinessID: updated.BusinessID,
			Status:     updated.Status,
			OccurredAt: s.timeProvider.Now(),
		})
	}

	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование. Операция идемпотентна.
func (s *Service) Cancel(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	return s.ChangeStatus(ctx, bookingID, &models.ChangeStatusRequest{
		Status: string(domain.StatusCancelled),
	})
}

// RecordAdvance фиксирует внесённую предоплату.
// Сумма накапливается; подтверждение остаётся отдельным переходом статуса.
func (s *Service) RecordAdvance(ctx context.Context, bookingID int64, req *models.RecordAdvanceRequest) (*models.BookingResponse, error) {
	s.logger.Info("RecordAdvance: booking id=%d, amount=%.2f", bookingID, req.Amount)

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	var updated *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: RecordAdvance - repository error: %v", ErrInternal, err)
		}

		if booking.Status != domain.StatusPending && booking.Status != domain.StatusConfirmed {
			s.logger.Warn("RecordAdvance: booking id=%d has status=%s", bookingID, booking.Status)
			return fmt.Errorf("%w: advance can only be recorded for pending or confirmed bookings", ErrInvalidInput)
		}

		if err := s.bookingRepo.AddAdvancePaid(txCtx, bookingID, req.Amount); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: RecordAdvance - repository error: %v", ErrInternal, err)
		}

		booking.AdvancePaid += req.Amount
		updated = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("RecordAdvance: booking id=%d advance_paid=%.2f", bookingID, updated.AdvancePaid)

	s.publisher.Publish(ctx, events.Event{
		Type:       events.TypeAdvanceRecorded,
		BookingID:  updated.ID,
		BusinessID: updated.BusinessID,
		Status:     updated.Status,
		OccurredAt: s.timeProvider.Now(),
	})

	return models.FromDomainBooking(updated), nil
}

// BookingsInRange возвращает бронирования за период для отрисовки календаря.
// Только чтение: никаких бизнес-правил, никаких выводов о доступности.
func (s *Service) BookingsInRange(ctx context.Context, req *models.CalendarRequest) (*models.BookingListResponse, error) {
	s.logger.Info("BookingsInRange: business=%d, period=%s to %s",
		req.BusinessID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidTimeRange
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		domainStatus = &status
	}

	filter := domain.CalendarFilter{
		BusinessID:       req.BusinessID,
		StartDate:        &req.StartDate,
		EndDate:          &req.EndDate,
		Status:           domainStatus,
		IncludeCancelled: req.IncludeCancelled,
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("BookingsInRange: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: BookingsInRange - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// checkTransitionGate проверяет policy-условия конкретного перехода,
// дополнительные к таблице переходов
func (s *Service) checkTransitionGate(ctx context.Context, booking *domain.Booking, newStatus domain.BookingStatus) error {
	now := s.timeProvider.Now()

	switch newStatus {
	case domain.StatusConfirmed:
		settings, err := s.settingsRepo.GetSettings(ctx, booking.BusinessID)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				return fmt.Errorf("%w: checkTransitionGate - settings not found", ErrInternal)
			}
			return fmt.Errorf("%w: checkTransitionGate - settings error: %v", ErrInternal, err)
		}
		// Если политика предоплаты уже выключена, ранее созданные pending
		// подтверждаются без проверки суммы
		if settings.RequireAdvance && booking.AdvancePaid < settings.RequiredAdvance(booking.ServicePrice) {
			s.logger.Warn("checkTransitionGate: booking id=%d advance %.2f < required %.2f",
				booking.ID, booking.AdvancePaid, settings.RequiredAdvance(booking.ServicePrice))
			return ErrAdvanceNotPaid
		}
		return nil

	case domain.StatusCompleted:
		if isDateInFuture(booking.BookingDate, now) {
			return ErrBookingInFuture
		}
		return nil

	case domain.StatusNoShow:
		if !slotFinished(booking, now) {
			return ErrSlotNotFinished
		}
		return nil

	default:
		return nil
	}
}

// slotFinished возвращает true, когда время окончания слота бронирования
// уже прошло
func slotFinished(booking *domain.Booking, now time.Time) bool {
	y, m, d := booking.BookingDate.Date()
	ny, nm, nd := now.Date()
	bookingDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())

	if bookingDay.Before(today) {
		return true
	}
	if bookingDay.After(today) {
		return false
	}

	end, err := booking.EndTime()
	if err != nil {
		return false
	}
	// "24:00" (full-day слот) заканчивается только со сменой даты
	if end == "24:00" {
		return false
	}
	return end.IsBefore(types.NewTimeString(now)) || end == types.NewTimeString(now)
}

func isDateInFuture(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.After(nowOnly)
}
