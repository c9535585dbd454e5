package change_status

import (
	"context"

	"github.com/slotline/bookingengine/internal/service/bookings/models"
)

type BookingService interface {
	ChangeStatus(ctx context.Context, bookingID int64, req *models.ChangeStatusRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
