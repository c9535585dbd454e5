package get_available_slots

import (
	"time"

	"github.com/slotline/bookingengine/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	Date       time.Time // Дата для получения слотов (без времени)
	ServiceID  *int64    // ID услуги; nil допустим только в full-day режиме
}

// Response модель ответа со списком слотов и их доступностью
type Response struct {
	Date       time.Time
	BusinessID int64
	ServiceID  *int64
	Slots      []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime         types.TimeString // Время начала слота
	EndTime           types.TimeString // Время окончания слота
	DurationMinutes   int              // Длительность в минутах
	RemainingCapacity int              // Количество свободных мест
	Capacity          int              // Общее количество мест
}
