package domain

import (
	"errors"
	"fmt"
	"strings"
)

// PaymentMethodFactory creates payment methods based on type and creator with validation
type PaymentMethodFactory struct{}

// NewPaymentMethodFactory creates a new payment method factory
func NewPaymentMethodFactory() *PaymentMethodFactory {
	return &PaymentMethodFactory{}
}

// NewPaymentMethod creates a payment method using the default factory
func NewPaymentMethod(paymentType PaymentMethodType, creator *PaymentMethodCreator) (PaymentMethod, error) {
	return NewPaymentMethodFactory().CreatePaymentMethod(paymentType, creator)
}

// CreatePaymentMethod creates a payment method based on the type and creator with validation
func (f *PaymentMethodFactory) CreatePaymentMethod(paymentType PaymentMethodType, creator *PaymentMethodCreator) (PaymentMethod, error) {
	if creator == nil {
		return nil, errors.New("payment method creator cannot be nil")
	}

	switch paymentType {
	case PaymentMethodTypeCash:
		return Cash{}, nil
	case PaymentMethodTypeCheck:
		return f.createCheck(creator)
	case PaymentMethodTypeCard:
		return f.createCard(creator)
	default:
		return nil, fmt.Errorf("unsupported payment method type: %s", paymentType.String())
	}
}

func (f *PaymentMethodFactory) createCheck(creator *PaymentMethodCreator) (PaymentMethod, error) {
	if creator.CheckNumber == nil {
		return nil, errors.New("check_number is required for check payment method")
	}

	return Check{Number: CheckNumber(*creator.CheckNumber)}, nil
}

func (f *PaymentMethodFactory) createCard(creator *PaymentMethodCreator) (PaymentMethod, error) {
	if creator.CardNumber == nil {
		return nil, errors.New("card_number is required for card payment method")
	}

	if strings.TrimSpace(*creator.CardNumber) == "" {
		return nil, errors.New("card_number cannot be empty")
	}

	if creator.CheckNumber == nil {
		return nil, errors.New("check_number is required for card payment method")
	}

	return Card{
		CreditCard: NewCreditCard(CheckNumber(*creator.CheckNumber), CardNumber(*creator.CardNumber)),
	}, nil
}

// CreatorFromPaymentMethod is the inverse of CreatePaymentMethod
func CreatorFromPaymentMethod(m PaymentMethod) *PaymentMethodCreator {
	return VisitPaymentMethod[*PaymentMethodCreator](m, PaymentMethodMatcher[*PaymentMethodCreator]{
		Cash: func(Cash) *PaymentMethodCreator {
			return NewCashPaymentCreator()
		},
		Check: func(c Check) *PaymentMethodCreator {
			return NewCheckPaymentCreator(uint32(c.Number))
		},
		Card: func(c Card) *PaymentMethodCreator {
			return NewCardPaymentCreator(uint32(c.CreditCard.CheckNumber), string(c.CreditCard.Number))
		},
	})
}
