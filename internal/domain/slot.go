package domain

import (
	"time"

	"github.com/slotline/bookingengine/pkg/types"
)

// Slot бронируемое временное окно. Производная сущность: выводится из
// настроек и рабочих часов, в БД не хранится.
type Slot struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	ServiceID *int64 // nil в full-day режиме
	Capacity  int
	Booked    int // 0 <= Booked <= Capacity
}

// Remaining возвращает количество свободных мест в слоте
func (s *Slot) Remaining() int {
	remaining := s.Capacity - s.Booked
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFull returns true if the slot has no available spots
func (s *Slot) IsFull() bool {
	return s.Remaining() == 0
}

// Matches возвращает true, если бронирование относится именно к этому слоту:
// совпадают дата, время начала и услуга
func (s *Slot) Matches(b *Booking) bool {
	if !sameDay(s.Date, b.BookingDate) {
		return false
	}
	if s.StartTime != b.StartTime {
		return false
	}
	if s.ServiceID == nil || b.ServiceID == nil {
		return s.ServiceID == nil && b.ServiceID == nil
	}
	return *s.ServiceID == *b.ServiceID
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
