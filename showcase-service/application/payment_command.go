package application

import (
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/pkg/errors"
)

// ValidationError marks a command rejected before reaching the domain
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return errors.WithStack(&ValidationError{Reason: reason})
}

// IsValidationError reports whether err was caused by an invalid command
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// PaymentCommand is the wire form of a payment
type PaymentCommand struct {
	AmountInCent      int32   `json:"amount_in_cent"`
	Currency          string  `json:"currency"`
	PaymentMethodType string  `json:"payment_method_type"`
	CheckNumber       *uint32 `json:"check_number,omitempty"`
	CardNumber        *string `json:"card_number,omitempty"`
}

// toPayment validates the command and builds the domain payment.
// Negative amounts are rejected here; the domain itself accepts them.
func (cmd *PaymentCommand) toPayment() (domain.Payment, error) {
	if cmd == nil {
		return domain.Payment{}, invalid("command is required")
	}

	if domain.PaymentAmountInCent(cmd.AmountInCent).IsNegative() {
		return domain.Payment{}, invalid("amount cannot be negative")
	}

	if cmd.Currency == "" {
		return domain.Payment{}, invalid("currency is required")
	}

	currency, err := domain.NewCurrency(cmd.Currency)
	if err != nil {
		return domain.Payment{}, invalid(err.Error())
	}

	if cmd.PaymentMethodType == "" {
		return domain.Payment{}, invalid("payment method type is required")
	}

	methodType, err := domain.NewPaymentMethodType(cmd.PaymentMethodType)
	if err != nil {
		return domain.Payment{}, invalid(err.Error())
	}

	method, err := domain.NewPaymentMethod(methodType, &domain.PaymentMethodCreator{
		CheckNumber: cmd.CheckNumber,
		CardNumber:  cmd.CardNumber,
	})
	if err != nil {
		return domain.Payment{}, invalid(err.Error())
	}

	return domain.NewPayment(domain.PaymentAmountInCent(cmd.AmountInCent), currency, method), nil
}
