package domain

import (
	"fmt"
	"strings"
)

type PaymentMethodType string

const (
	PaymentMethodTypeCash  PaymentMethodType = "cash"
	PaymentMethodTypeCheck PaymentMethodType = "check"
	PaymentMethodTypeCard  PaymentMethodType = "card"
)

var allPaymentMethodTypes = map[string]PaymentMethodType{
	PaymentMethodTypeCash.String():  PaymentMethodTypeCash,
	PaymentMethodTypeCheck.String(): PaymentMethodTypeCheck,
	PaymentMethodTypeCard.String():  PaymentMethodTypeCard,
}

func NewPaymentMethodType(value string) (PaymentMethodType, error) {
	if t, ok := allPaymentMethodTypes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown payment method type: %s", value)
}

func (pt PaymentMethodType) String() string {
	return string(pt)
}
