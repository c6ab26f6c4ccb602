package domain

import (
	"context"
	"fmt"

	"github.com/draftea/feature-showcase/shared/events"
	"github.com/draftea/feature-showcase/shared/models"
)

// Payment combines an amount, a currency and a payment method.
// It cannot be changed after construction.
type Payment struct {
	amountInCent PaymentAmountInCent
	currency     Currency
	method       PaymentMethod
}

// NewPayment creates a payment value
func NewPayment(amountInCent PaymentAmountInCent, currency Currency, method PaymentMethod) Payment {
	return Payment{
		amountInCent: amountInCent,
		currency:     currency,
		method:       method,
	}
}

func (p Payment) AmountInCent() PaymentAmountInCent {
	return p.amountInCent
}

func (p Payment) Currency() Currency {
	return p.currency
}

func (p Payment) Method() PaymentMethod {
	return p.method
}

// Describe returns a human readable description of the payment
func (p Payment) Describe() string {
	return fmt.Sprintf("An amount of %d in cents, was paid in %s using %s",
		p.amountInCent, p.currency, DescribePaymentMethod(p.method))
}

// PaymentRecord is a payment stored in the ledger
type PaymentRecord struct {
	ID         models.ID
	Payment    Payment
	Timestamps models.Timestamps

	events []*events.Event
}

// RecordPayment assigns an identity to a payment and records the domain event
func RecordPayment(payment Payment) *PaymentRecord {
	record := &PaymentRecord{
		ID:         models.GenerateUUID(),
		Payment:    payment,
		Timestamps: models.NewTimestamps(),
	}

	creator := CreatorFromPaymentMethod(payment.Method())
	event := events.NewEvent(record.ID, events.PaymentRecordedEvent, PaymentRecordedData{
		PaymentID:    record.ID,
		AmountInCent: int32(payment.AmountInCent()),
		Currency:     payment.Currency().Code(),
		MethodType:   payment.Method().Type().String(),
		CheckNumber:  creator.CheckNumber,
		CardNumber:   creator.CardNumber,
		Description:  payment.Describe(),
	})

	record.recordEvent(event)
	return record
}

// Events returns domain events
func (r *PaymentRecord) Events() []*events.Event {
	return r.events
}

// ClearEvents clears domain events
func (r *PaymentRecord) ClearEvents() {
	r.events = make([]*events.Event, 0)
}

func (r *PaymentRecord) recordEvent(event *events.Event) {
	r.events = append(r.events, event)
}

// PaymentRecordedData is the payload of events.PaymentRecordedEvent
type PaymentRecordedData struct {
	PaymentID    models.ID `json:"payment_id"`
	AmountInCent int32     `json:"amount_in_cent"`
	Currency     string    `json:"currency"`
	MethodType   string    `json:"method_type"`
	CheckNumber  *uint32   `json:"check_number,omitempty"`
	CardNumber   *string   `json:"card_number,omitempty"`
	Description  string    `json:"description"`
}

// PaymentRepository interface
type PaymentRepository interface {
	Save(ctx context.Context, record *PaymentRecord) error
	FindByID(ctx context.Context, id models.ID) (*PaymentRecord, error)
}
