package create_booking

import (
	"time"

	"github.com/slotline/bookingengine/internal/domain"
	createBooking "github.com/slotline/bookingengine/internal/usecase/create_booking"
	"github.com/slotline/bookingengine/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID    int64   `json:"businessId" validate:"required,gt=0"`
	CustomerName  string  `json:"customerName" validate:"required,max=200"`
	CustomerPhone string  `json:"customerPhone" validate:"required,max=32"`
	CustomerEmail *string `json:"customerEmail,omitempty" validate:"omitempty,email"`
	BookingDate   string  `json:"bookingDate" validate:"required"` // "2025-10-15"
	StartTime     string  `json:"startTime"`                       // "10:00"; пустое допустимо в full-day режиме
	ServiceID     *int64  `json:"serviceId,omitempty" validate:"omitempty,gt=0"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
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
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	var startTime types.TimeString
	if r.StartTime != "" {
		startTime, err = types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, err
		}
	}

	return &createBooking.Request{
		BusinessID:    r.BusinessID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Date:          bookingDate,
		StartTime:     startTime,
		ServiceID:     r.ServiceID,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		CustomerEmail:   resp.CustomerEmail,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		ServiceID:       resp.ServiceID,
		Status:          resp.Status,
		ServicePrice:    resp.ServicePrice,
		AdvancePaid:     resp.AdvancePaid,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
