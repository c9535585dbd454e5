package get_available_slots

import (
	"github.com/slotline/bookingengine/internal/domain"
	getAvailableSlots "github.com/slotline/bookingengine/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	DurationMinutes   int    `json:"durationMinutes"`
	RemainingCapacity int    `json:"remainingCapacity"`
	Capacity          int    `json:"capacity"`
	Available         bool   `json:"available"`
}

// SlotsResponse HTTP модель списка слотов на дату
type SlotsResponse struct {
	BusinessID int64          `json:"businessId"`
	Date       string         `json:"date"`
	ServiceID  *int64         `json:"serviceId,omitempty"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:         s.StartTime.String(),
			EndTime:           s.EndTime.String(),
			DurationMinutes:   s.DurationMinutes,
			RemainingCapacity: s.RemainingCapacity,
			Capacity:          s.Capacity,
			Available:         s.RemainingCapacity > 0,
		}
	}

	return &SlotsResponse{
		BusinessID: resp.BusinessID,
		Date:       resp.Date.Format(domain.DateFormat),
		ServiceID:  resp.ServiceID,
		Slots:      slots,
	}
}
