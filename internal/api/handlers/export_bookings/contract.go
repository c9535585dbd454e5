package export_bookings

import (
	"context"

	"github.com/slotline/bookingengine/internal/service/bookings/models"
)

type BookingService interface {
	ExportXLSX(ctx context.Context, req *models.CalendarRequest) ([]byte, string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
