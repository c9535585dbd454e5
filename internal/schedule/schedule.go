// Package schedule содержит чистую математику расписания: генерацию слотов
// из настроек и рабочих часов и пересчёт занятости по бронированиям.
// Никакого состояния и обращений к хранилищу - одинаковый вход всегда даёт
// одинаковый упорядоченный список слотов.
package schedule

import (
	"time"

	"github.com/slotline/bookingengine/internal/domain"
	"github.com/slotline/bookingengine/pkg/types"
)

// Generate возвращает упорядоченный список слотов на дату.
//
// Full-day режим: один синтетический слот на все сутки с capacity = 1 - день
// продаётся как одна единица, услуги в этом режиме не участвуют.
//
// Обычный режим: слоты идут от открытия с шагом duration + buffer, где duration -
// длительность услуги (или slotDurationMinutes, если услуга не задана).
// Неполный хвостовой слот, вылезающий за закрытие, отбрасывается целиком,
// а не усекается: нельзя молча продать услугу короче сконфигурированной.
func Generate(
	date time.Time,
	hours *domain.BusinessHours,
	settings *domain.BookingSettings,
	service *domain.Service,
) ([]domain.Slot, error) {
	if settings.FullDayMode {
		return []domain.Slot{fullDaySlot(date)}, nil
	}

	if hours == nil {
		// Рабочие часы не заданы - бизнес закрыт
		return []domain.Slot{}, nil
	}

	duration := hours.SlotDurationMinutes
	capacity := 1
	var serviceID *int64
	if service != nil {
		duration = service.DurationMinutes
		capacity = service.CapacityPerSlot
		serviceID = &service.ID
	}

	slots := make([]domain.Slot, 0)
	cursor := hours.OpenTime

	for cursor.IsBefore(hours.CloseTime) {
		end, err := cursor.AddMinutes(duration)
		if err != nil {
			return nil, err
		}
		if end.IsAfter(hours.CloseTime) {
			break
		}

		slots = append(slots, domain.Slot{
			Date:      date,
			StartTime: cursor,
			EndTime:   end,
			ServiceID: serviceID,
			Capacity:  capacity,
		})

		cursor, err = cursor.AddMinutes(duration + hours.BufferMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

func fullDaySlot(date time.Time) domain.Slot {
	end, _ := types.TimeString(domain.FullDayStartTime).AddMinutes(domain.FullDayDurationMinutes)
	return domain.Slot{
		Date:      date,
		StartTime: types.TimeString(domain.FullDayStartTime),
		EndTime:   end,
		Capacity:  1,
	}
}

// CountForSlot подсчитывает бронирования, занимающие место в слоте.
// Бронирование привязано к слоту точным совпадением (даты, времени начала,
// услуги); отменённые место не занимают, completed и no_show - занимают.
func CountForSlot(slot *domain.Slot, bookings []*domain.Booking) int {
	count := 0
	for _, b := range bookings {
		if !b.ConsumesCapacity() {
			continue
		}
		if slot.Matches(b) {
			count++
		}
	}
	return count
}

// Occupy заполняет Booked каждого слота по списку бронирований на дату
func Occupy(slots []domain.Slot, bookings []*domain.Booking) []domain.Slot {
	for i := range slots {
		slots[i].Booked = CountForSlot(&slots[i], bookings)
	}
	return slots
}

// HasActiveOnDate возвращает true, если среди бронирований есть хоть одно,
// занимающее capacity (любая услуга, любое время). Используется для
// oneBookingPerDay: ограничение капасити и дневная эксклюзивность - независимые
// проверки.
func HasActiveOnDate(bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.ConsumesCapacity() {
			return true
		}
	}
	return false
}

// FindSlot ищет слот с указанным временем начала
func FindSlot(slots []domain.Slot, startTime types.TimeString) (*domain.Slot, bool) {
	for i := range slots {
		if slots[i].StartTime == startTime {
			return &slots[i], true
		}
	}
	return nil, false
}
