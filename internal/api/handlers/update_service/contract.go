package update_service

import (
	"context"

	"github.com/slotline/bookingengine/internal/service/settings/models"
)

type SettingsService interface {
	UpdateService(ctx context.Context, businessID, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
