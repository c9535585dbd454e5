package create_service

import (
	"context"

	"github.com/slotline/bookingengine/internal/service/settings/models"
)

type SettingsService interface {
	CreateService(ctx context.Context, businessID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
