package models

import (
	"time"

	"github.com/slotline/bookingengine/internal/domain"
)

// Request модели

// ChangeStatusRequest запрос на смену статуса бронирования
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// RecordAdvanceRequest запрос на фиксацию предоплаты
type RecordAdvanceRequest struct {
	Amount float64 `json:"amount"`
}

// CalendarRequest запрос бронирований за период
type CalendarRequest struct {
	BusinessID       int64
	StartDate        time.Time
	EndDate          time.Time
	Status           *string
	IncludeCancelled bool
}

// Response модели

// BookingResponse представление бронирования для чтения
type BookingResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	Status          string  `json:"status"`
	ServicePrice    float64 `json:"servicePrice"`
	AdvancePaid     float64 `json:"advancePaid"`
	Notes           *string `json:"notes,omitempty"`
	CancelledAt     *string `json:"cancelledAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// DayGroup бронирования одного календарного дня
type DayGroup struct {
	Date     string             `json:"date"`
	Bookings []*BookingResponse `json:"bookings"`
}

// WeekGroup бронирования одной ISO-недели
type WeekGroup struct {
	Year     int                `json:"year"`
	Week     int                `json:"week"`
	Bookings []*BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	var cancelledAt *string
	if b.CancelledAt != nil {
		s := b.CancelledAt.Format(time.RFC3339)
		cancelledAt = &s
	}

	return &BookingResponse{
		ID:              b.ID,
		BusinessID:      b.BusinessID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		CustomerEmail:   b.CustomerEmail,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		ServiceID:       b.ServiceID,
		Status:          string(b.Status),
		ServicePrice:    b.ServicePrice,
		AdvancePaid:     b.AdvancePaid,
		Notes:           b.Notes,
		CancelledAt:     cancelledAt,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список domain.Booking
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// GroupByDay группирует бронирования по календарным дням (для day/month видов).
// Порядок групп следует порядку бронирований во входном списке.
func GroupByDay(bookings []*BookingResponse) []DayGroup {
	index := make(map[string]int)
	groups := make([]DayGroup, 0)

	for _, b := range bookings {
		i, ok := index[b.BookingDate]
		if !ok {
			i = len(groups)
			index[b.BookingDate] = i
			groups = append(groups, DayGroup{Date: b.BookingDate})
		}
		groups[i].Bookings = append(groups[i].Bookings, b)
	}

	return groups
}

// GroupByWeek группирует бронирования по ISO-неделям (для week видов)
func GroupByWeek(bookings []*BookingResponse) []WeekGroup {
	type weekKey struct {
		year int
		week int
	}

	index := make(map[weekKey]int)
	groups := make([]WeekGroup, 0)

	for _, b := range bookings {
		date, err := time.Parse(domain.DateFormat, b.BookingDate)
		if err != nil {
			continue
		}
		year, week := date.ISOWeek()
		key := weekKey{year: year, week: week}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, WeekGroup{Year: year, Week: week})
		}
		groups[i].Bookings = append(groups[i].Bookings, b)
	}

	return groups
}
