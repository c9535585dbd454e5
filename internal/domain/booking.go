package domain

import (
	"time"

	"github.com/slotline/bookingengine/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// allowedTransitions явная таблица переходов статусов.
// Любой переход вне таблицы недопустим; completed и no_show - терминальные.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

// CanTransition возвращает true, если переход from -> to разрешён таблицей переходов
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ParseBookingStatus валидирует строковое представление статуса
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// Booking represents a customer booking against a derived slot.
// Привязка к слоту - тройка (BookingDate, StartTime, ServiceID), внешнего ключа
// на слот нет: слоты не персистятся, занятость пересчитывается по бронированиям.
type Booking struct {
	ID              int64
	BusinessID      int64
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	ServiceID       *int64 // nil = бронирование full-day юнита
	Status          BookingStatus

	ServicePrice float64
	AdvancePaid  float64
	Notes        *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ConsumesCapacity возвращает true, если бронирование занимает место в слоте.
// Отменённое бронирование освобождает место; completed и no_show продолжают
// считаться занявшими слот.
func (b *Booking) ConsumesCapacity() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsFullDay возвращает true для бронирования full-day юнита
func (b *Booking) IsFullDay() bool {
	return b.ServiceID == nil
}

// EndTime возвращает время окончания бронирования
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// CalendarFilter фильтр для выборки бронирований бизнеса
type CalendarFilter struct {
	BusinessID       int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
