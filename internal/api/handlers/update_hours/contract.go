package update_hours

import (
	"context"

	"github.com/slotline/bookingengine/internal/service/settings/models"
)

type SettingsService interface {
	UpdateHours(ctx context.Context, businessID int64, req *models.UpdateHoursRequest) (*models.HoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
