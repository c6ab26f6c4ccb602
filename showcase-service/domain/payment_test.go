package domain

import (
	"testing"

	"github.com/draftea/feature-showcase/shared/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayment_Describe(t *testing.T) {
	tests := []struct {
		name     string
		payment  Payment
		expected string
		contains []string
	}{
		{
			name: "credit card payment",
			payment: NewPayment(1000, CurrencyUSD, Card{
				CreditCard: NewCreditCard(88866, "1234 5678 9012 3456"),
			}),
			expected: "An amount of 1000 in cents, was paid in Usd using a credit card 1234 5678 9012 3456 with check number 88866",
			contains: []string{"1000", "Usd", "1234 5678 9012 3456", "88866"},
		},
		{
			name:     "check payment",
			payment:  NewPayment(800, CurrencyCAD, Check{Number: 123456}),
			expected: "An amount of 800 in cents, was paid in Cad using a check with number 123456",
			contains: []string{"800", "Cad", "123456"},
		},
		{
			name:     "cash payment",
			payment:  NewPayment(250, CurrencyEUR, Cash{}),
			expected: "An amount of 250 in cents, was paid in Eur using cash",
			contains: []string{"250", "Eur", "cash"},
		},
		{
			name:     "negative amount is still described",
			payment:  NewPayment(-5, CurrencyGBP, Cash{}),
			expected: "An amount of -5 in cents, was paid in Gbp using cash",
		},
		{
			name:     "max check number",
			payment:  NewPayment(1, CurrencyUSD, Check{Number: 4294967295}),
			expected: "An amount of 1 in cents, was paid in Usd using a check with number 4294967295",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			description := tt.payment.Describe()

			assert.Equal(t, tt.expected, description)
			for _, part := range tt.contains {
				assert.Contains(t, description, part)
			}
			assert.Equal(t, description, tt.payment.Describe(), "describe must be pure")
		})
	}
}

func TestPayment_Accessors(t *testing.T) {
	payment := NewPayment(800, CurrencyCAD, Check{Number: 123456})

	assert.Equal(t, PaymentAmountInCent(800), payment.AmountInCent())
	assert.Equal(t, CurrencyCAD, payment.Currency())
	assert.Equal(t, Check{Number: 123456}, payment.Method())
}

func TestRecordPayment(t *testing.T) {
	payment := NewPayment(1000, CurrencyUSD, Card{CreditCard: NewCreditCard(88866, "1234 5678 9012 3456")})

	record := RecordPayment(payment)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, payment, record.Payment)
	require.Len(t, record.Events(), 1)

	evt := record.Events()[0]
	assert.Equal(t, events.PaymentRecordedEvent, evt.EventType)
	assert.Equal(t, record.ID, evt.AggregateID)

	var data PaymentRecordedData
	require.NoError(t, evt.UnmarshalPayload(&data))
	assert.Equal(t, record.ID, data.PaymentID)
	assert.Equal(t, int32(1000), data.AmountInCent)
	assert.Equal(t, "USD", data.Currency)
	assert.Equal(t, "card", data.MethodType)
	require.NotNil(t, data.CheckNumber)
	assert.Equal(t, uint32(88866), *data.CheckNumber)
	require.NotNil(t, data.CardNumber)
	assert.Equal(t, "1234 5678 9012 3456", *data.CardNumber)
	assert.Equal(t, payment.Describe(), data.Description)

	record.ClearEvents()
	assert.Empty(t, record.Events())
}

func TestPaymentAmountInCent_IsNegative(t *testing.T) {
	assert.True(t, PaymentAmountInCent(-1).IsNegative())
	assert.False(t, PaymentAmountInCent(0).IsNegative())
	assert.False(t, PaymentAmountInCent(2147483647).IsNegative())
	assert.Equal(t, "-42", PaymentAmountInCent(-42).String())
}
