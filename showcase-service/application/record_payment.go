package application

import (
	"context"
	"time"

	"github.com/draftea/feature-showcase/shared/events"
	"github.com/draftea/feature-showcase/shared/telemetry"
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RecordPaymentResponse represents the response after recording a payment
type RecordPaymentResponse struct {
	PaymentID   string `json:"payment_id"`
	Description string `json:"description"`
}

// RecordPayment stores a payment in the ledger and announces it
type RecordPayment struct {
	paymentRepository domain.PaymentRepository
	eventPublisher    events.Publisher
}

// NewRecordPayment creates a new RecordPayment use case
func NewRecordPayment(
	paymentRepository domain.PaymentRepository,
	eventPublisher events.Publisher,
) *RecordPayment {
	return &RecordPayment{
		paymentRepository: paymentRepository,
		eventPublisher:    eventPublisher,
	}
}

// Execute executes the record payment use case
func (uc *RecordPayment) Execute(ctx context.Context, cmd *PaymentCommand) (*RecordPaymentResponse, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "record_payment")
	defer span.End()

	status := "error"
	defer func() {
		telemetry.RecordCounter(ctx, "payments_recorded_total", "Total record payment attempts", 1,
			attribute.String("status", status),
		)
		telemetry.RecordHistogram(ctx, "record_payment_duration_seconds", "Record payment duration",
			time.Since(start).Seconds(),
			attribute.String("status", status),
		)
	}()

	payment, err := cmd.toPayment()
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "invalid command")
	}

	record := domain.RecordPayment(payment)
	span.SetAttributes(
		attribute.String("payment_id", record.ID.String()),
		attribute.String("method", payment.Method().Type().String()),
	)

	if err := uc.paymentRepository.Save(ctx, record); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save payment")
	}

	if correlationID, ok := events.CorrelationIDFromContext(ctx); ok {
		for _, evt := range record.Events() {
			evt.WithCorrelationID(correlationID)
		}
	}

	if err := uc.eventPublisher.Publish(ctx, record.Events()...); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to publish events")
	}
	record.ClearEvents()

	status = "success"
	span.AddEvent("payment_recorded", trace.WithAttributes(attribute.String("payment_id", record.ID.String())))

	return &RecordPaymentResponse{
		PaymentID:   record.ID.String(),
		Description: payment.Describe(),
	}, nil
}
