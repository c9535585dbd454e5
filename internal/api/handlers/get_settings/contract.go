package get_settings

import (
	"context"

	"github.com/slotline/bookingengine/internal/service/settings/models"
)

type SettingsService interface {
	GetConfiguration(ctx context.Context, businessID int64) (*models.ConfigurationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
