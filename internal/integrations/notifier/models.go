package notifier

// BookingEvent payload webhook-уведомления
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  int64  `json:"bookingId"`
	BusinessID int64  `json:"businessId"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurredAt"` // RFC 3339
}
