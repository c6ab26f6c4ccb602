package application

import (
	"context"

	"github.com/draftea/feature-showcase/shared/models"
	"github.com/draftea/feature-showcase/shared/telemetry"
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrPaymentNotFound is returned when the ledger has no payment with the requested ID
var ErrPaymentNotFound = errors.New("payment not found")

// GetPaymentQuery represents the query to get a payment
type GetPaymentQuery struct {
	PaymentID string `json:"payment_id"`
}

// GetPaymentResponse represents the response for getting a payment
type GetPaymentResponse struct {
	PaymentID   string         `json:"payment_id"`
	Payment     PaymentCommand `json:"payment"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
}

// GetPayment use case
type GetPayment struct {
	paymentRepository domain.PaymentRepository
}

// NewGetPayment creates a new GetPayment use case
func NewGetPayment(paymentRepository domain.PaymentRepository) *GetPayment {
	return &GetPayment{
		paymentRepository: paymentRepository,
	}
}

// Execute executes the get payment use case
func (uc *GetPayment) Execute(ctx context.Context, query *GetPaymentQuery) (*GetPaymentResponse, error) {
	if query == nil {
		return nil, invalid("query is required")
	}

	ctx, span := telemetry.StartSpan(ctx, "get_payment",
		trace.WithAttributes(attribute.String("payment_id", query.PaymentID)),
	)
	defer span.End()

	if query.PaymentID == "" {
		return nil, invalid("payment ID is required")
	}

	paymentID, err := models.NewID(query.PaymentID)
	if err != nil {
		return nil, errors.Wrap(invalid(err.Error()), "invalid payment ID")
	}

	record, err := uc.paymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find payment")
	}

	if record == nil {
		return nil, ErrPaymentNotFound
	}

	payment := record.Payment
	creator := domain.CreatorFromPaymentMethod(payment.Method())

	return &GetPaymentResponse{
		PaymentID: record.ID.String(),
		Payment: PaymentCommand{
			AmountInCent:      int32(payment.AmountInCent()),
			Currency:          payment.Currency().Code(),
			PaymentMethodType: payment.Method().Type().String(),
			CheckNumber:       creator.CheckNumber,
			CardNumber:        creator.CardNumber,
		},
		Description: payment.Describe(),
		CreatedAt:   record.Timestamps.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
