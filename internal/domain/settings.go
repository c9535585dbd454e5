package domain

import (
	"time"

	"github.com/slotline/bookingengine/pkg/types"
)

// BookingSettings policy-флаги бронирования бизнеса (одна запись на бизнес).
// Инвариант: AdvancePercentage имеет смысл только при RequireAdvance = true,
// движок не должен читать его в остальных случаях.
type BookingSettings struct {
	BusinessID        int64
	FullDayMode       bool // весь день продаётся как один юнит
	RequireAdvance    bool // бронирование подтверждается только после предоплаты
	AdvancePercentage int  // процент предоплаты от цены услуги, [1,100]
	OneBookingPerDay  bool // не более одного активного бронирования на дату
	AutoConfirm       bool // создавать бронирования сразу в confirmed, когда предоплата не требуется
	UpdatedAt         time.Time
}

// RequiredAdvance возвращает минимальную сумму предоплаты для перехода
// pending -> confirmed. Вызывать только при RequireAdvance = true.
func (s *BookingSettings) RequiredAdvance(servicePrice float64) float64 {
	return servicePrice * float64(s.AdvancePercentage) / 100
}

// InitialStatus возвращает статус, с которым создаётся новое бронирование
func (s *BookingSettings) InitialStatus() BookingStatus {
	if !s.RequireAdvance && s.AutoConfirm {
		return StatusConfirmed
	}
	return StatusPending
}

// BusinessHours рабочие часы бизнеса, источник данных для генератора слотов
type BusinessHours struct {
	BusinessID          int64
	OpenTime            types.TimeString
	CloseTime           types.TimeString // строго позже OpenTime
	SlotDurationMinutes int
	BufferMinutes       int // пауза между слотами
	UpdatedAt           time.Time
}

// Service бронируемая услуга (единица расписания при FullDayMode = false)
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	CapacityPerSlot int
	Price           *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PriceOrZero возвращает цену услуги, 0 если цена не задана
func (s *Service) PriceOrZero() float64 {
	if s.Price == nil {
		return 0
	}
	return *s.Price
}
