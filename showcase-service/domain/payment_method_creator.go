package domain

// PaymentMethodCreator contains all possible fields for creating payment methods.
// Fields are pointers to allow nil checking for validation.
type PaymentMethodCreator struct {
	// Check payment and card check digits
	CheckNumber *uint32

	// Card payment fields
	CardNumber *string
}

// NewCashPaymentCreator creates a creator for cash payments
func NewCashPaymentCreator() *PaymentMethodCreator {
	return &PaymentMethodCreator{}
}

// NewCheckPaymentCreator creates a creator for check payments
func NewCheckPaymentCreator(checkNumber uint32) *PaymentMethodCreator {
	return &PaymentMethodCreator{
		CheckNumber: &checkNumber,
	}
}

// NewCardPaymentCreator creates a creator for card payments
func NewCardPaymentCreator(checkNumber uint32, cardNumber string) *PaymentMethodCreator {
	return &PaymentMethodCreator{
		CheckNumber: &checkNumber,
		CardNumber:  &cardNumber,
	}
}
