package get_calendar

import (
	"context"

	"github.com/slotline/bookingengine/internal/service/bookings/models"
)

type BookingService interface {
	BookingsInRange(ctx context.Context, req *models.CalendarRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
