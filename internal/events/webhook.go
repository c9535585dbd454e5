package events

import (
	"context"
	"time"

	"github.com/slotline/bookingengine/internal/integrations/notifier"
)

const webhookDeliveryTimeout = 10 * time.Second

// NotifierClient интерфейс webhook-клиента
type NotifierClient interface {
	Send(ctx context.Context, event *notifier.BookingEvent) error
}

// WebhookPublisher асинхронно отправляет события на сконфигурированный webhook
type WebhookPublisher struct {
	client NotifierClient
	logger Logger
}

// NewWebhookPublisher создает publisher поверх webhook-клиента
func NewWebhookPublisher(client NotifierClient, logger Logger) *WebhookPublisher {
	return &WebhookPublisher{client: client, logger: logger}
}

// Publish отправляет событие в фоне. Контекст запроса к этому моменту может
// быть уже отменён, поэтому доставка идёт со своим таймаутом.
func (p *WebhookPublisher) Publish(ctx context.Context, event Event) {
	payload := &notifier.BookingEvent{
		Type:       string(event.Type),
		BookingID:  event.BookingID,
		BusinessID: event.BusinessID,
		Status:     string(event.Status),
		OccurredAt: event.OccurredAt.Format(time.RFC3339),
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), webhookDeliveryTimeout)
		defer cancel()

		if err := p.client.Send(sendCtx, payload); err != nil {
			p.logger.Error("webhook delivery failed: type=%s booking_id=%d: %v",
				event.Type, event.BookingID, err)
		}
	}()
}
