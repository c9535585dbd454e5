package bookings

import (
	"context"
	"time"

	"github.com/slotline/bookingengine/internal/domain"
	"github.com/slotline/bookingengine/internal/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.CalendarFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	AddAdvancePaid(ctx context.Context, id int64, amount float64) error
}

// SettingsRepository интерфейс репозитория настроек бизнеса.
// Настройки читаются в момент перехода: политика предоплаты, изменённая после
// создания бронирования, применяется как есть, без массовых до-подтверждений.
type SettingsRepository interface {
	GetSettings(ctx context.Context, businessID int64) (*domain.BookingSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий после коммита
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
