package list_services

import (
	"context"

	"github.com/slotline/bookingengine/internal/service/settings/models"
)

type SettingsService interface {
	ListServices(ctx context.Context, businessID int64) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
