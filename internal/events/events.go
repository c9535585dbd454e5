// Package events доставляет уведомления о зафиксированных изменениях
// бронирований. Движок публикует событие только после коммита; каким
// транспортом оно уедет дальше - решает wiring в main.
package events

import (
	"context"
	"time"

	"github.com/slotline/bookingengine/internal/domain"
)

// EventType тип события бронирования
type EventType string

const (
	TypeBookingCreated       EventType = "booking_created"
	TypeBookingStatusChanged EventType = "booking_status_changed"
	TypeAdvanceRecorded      EventType = "advance_recorded"
)

// Event событие о зафиксированном изменении бронирования
type Event struct {
	Type       EventType
	BookingID  int64
	BusinessID int64
	Status     domain.BookingStatus
	OccurredAt time.Time
}

// Publisher интерфейс публикации событий
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// NopPublisher заглушка, когда доставка событий не сконфигурирована
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(ctx context.Context, event Event) {}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LogPublisher пишет события в лог сервиса
type LogPublisher struct {
	logger Logger
}

// NewLogPublisher создает publisher, пишущий события в лог
func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish логирует событие
func (p *LogPublisher) Publish(ctx context.Context, event Event) {
	p.logger.Info("event: type=%s booking_id=%d business_id=%d status=%s",
		event.Type, event.BookingID, event.BusinessID, event.Status)
}

// Fanout рассылает событие нескольким publisher-ам
type Fanout struct {
	publishers []Publisher
}

// NewFanout создает fanout по списку publisher-ов
func NewFanout(publishers ...Publisher) *Fanout {
	return &Fanout{publishers: publishers}
}

// Publish передаёт событие каждому publisher-у
func (f *Fanout) Publish(ctx context.Context, event Event) {
	for _, p := range f.publishers {
		p.Publish(ctx, event)
	}
}
