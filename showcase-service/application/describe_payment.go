package application

import (
	"context"

	"github.com/draftea/feature-showcase/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// DescribePaymentResponse carries the human readable description
type DescribePaymentResponse struct {
	Description string `json:"description"`
}

// DescribePayment formats a payment without storing it
type DescribePayment struct{}

// NewDescribePayment creates a new DescribePayment use case
func NewDescribePayment() *DescribePayment {
	return &DescribePayment{}
}

// Execute executes the describe payment use case
func (uc *DescribePayment) Execute(ctx context.Context, cmd *PaymentCommand) (*DescribePaymentResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "describe_payment")
	defer span.End()

	payment, err := cmd.toPayment()
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "invalid command")
	}

	telemetry.RecordCounter(ctx, "payments_described_total", "Total payments described", 1,
		attribute.String("method", payment.Method().Type().String()),
		attribute.String("currency", payment.Currency().Code()),
	)

	return &DescribePaymentResponse{
		Description: payment.Describe(),
	}, nil
}
