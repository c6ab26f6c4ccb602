package domain

import "strconv"

// CheckNumber identifies a paper check or the check digits embossed on a card
type CheckNumber uint32

func (n CheckNumber) String() string {
	return strconv.FormatUint(uint64(n), 10)
}

// CardNumber is the display form of a card number (digits and spaces)
type CardNumber string

func (n CardNumber) String() string {
	return string(n)
}

// PaymentAmountInCent represents an amount in the smallest currency unit.
// Negative amounts are representable.
type PaymentAmountInCent int32

func (a PaymentAmountInCent) String() string {
	return strconv.FormatInt(int64(a), 10)
}

// IsNegative reports whether the amount is below zero
func (a PaymentAmountInCent) IsNegative() bool {
	return a < 0
}

// CreditCard pairs a card's check number with its card number
type CreditCard struct {
	CheckNumber CheckNumber `json:"check_number"`
	Number      CardNumber  `json:"card_number"`
}

// NewCreditCard creates a credit card value
func NewCreditCard(checkNumber CheckNumber, number CardNumber) CreditCard {
	return CreditCard{
		CheckNumber: checkNumber,
		Number:      number,
	}
}
