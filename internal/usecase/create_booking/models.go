package create_booking

import (
	"time"

	"github.com/slotline/bookingengine/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID    int64            // ID бизнеса
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	CustomerEmail *string          // Email клиента (опционально)
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала слота; в full-day режиме может быть пустым
	ServiceID     *int64           // ID услуги; nil допустим только в full-day режиме
	Notes         *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	BusinessID      int64
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	ServiceID       *int64
	Status          string
	ServicePrice    float64
	AdvancePaid     float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
