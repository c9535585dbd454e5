package settings

import (
	"context"

	"github.com/slotline/bookingengine/internal/domain"
)

// SettingsRepository интерфейс репозитория конфигурации бизнеса
type SettingsRepository interface {
	GetSettings(ctx context.Context, businessID int64) (*domain.BookingSettings, error)
	UpsertSettings(ctx context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error)
	GetHours(ctx context.Context, businessID int64) (*domain.BusinessHours, error)
	UpsertHours(ctx context.Context, h *domain.BusinessHours) (*domain.BusinessHours, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
	ListServices(ctx context.Context, businessID int64) ([]*domain.Service, error)
	CountServices(ctx context.Context, businessID int64) (int, error)
	CreateService(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	DeleteService(ctx context.Context, businessID, serviceID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
