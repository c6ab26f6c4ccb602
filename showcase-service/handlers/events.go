package handlers

import (
	"context"

	"github.com/draftea/feature-showcase/shared/events"
	"github.com/draftea/feature-showcase/shared/telemetry"
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// PaymentEventHandlers reacts to payment ledger events
type PaymentEventHandlers struct {
	logger *zap.Logger
}

// NewPaymentEventHandlers creates new payment event handlers
func NewPaymentEventHandlers(logger *zap.Logger) *PaymentEventHandlers {
	return &PaymentEventHandlers{logger: logger}
}

// Handle implements the events.EventHandler interface
func (h *PaymentEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.PaymentRecordedEvent:
		return h.HandlePaymentRecorded(ctx, event)
	default:
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *PaymentEventHandlers) HandlerID() string {
	return "showcase-service-payment-handler"
}

// HandlePaymentRecorded logs the recorded payment and counts it per method
func (h *PaymentEventHandlers) HandlePaymentRecorded(ctx context.Context, event *events.Event) error {
	var data domain.PaymentRecordedData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "failed to decode payment recorded event")
	}
	if data.PaymentID == "" {
		return errors.New("payment_id is required")
	}

	h.logger.Info("payment recorded",
		zap.String("event_id", event.ID.String()),
		zap.String("payment_id", data.PaymentID.String()),
		zap.Int32("amount_in_cent", data.AmountInCent),
		zap.String("currency", data.Currency),
		zap.String("method", data.MethodType),
		zap.String("description", data.Description),
	)

	telemetry.RecordCounter(ctx, "payment_events_handled_total", "Total payment events handled", 1,
		attribute.String("event_type", event.EventType),
		attribute.String("method", data.MethodType),
	)
	return nil
}
