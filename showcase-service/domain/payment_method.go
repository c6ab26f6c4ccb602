package domain

import "fmt"

// PaymentMethod is one of Cash, Check or Card.
// The unexported marker keeps the set closed to this package.
type PaymentMethod interface {
	Type() PaymentMethodType
	isPaymentMethod()
}

// Cash is a payment made in cash
type Cash struct{}

// Check is a payment made with a paper check
type Check struct {
	Number CheckNumber `json:"check_number"`
}

// Card is a payment made with a credit card
type Card struct {
	CreditCard CreditCard `json:"credit_card"`
}

func (Cash) Type() PaymentMethodType  { return PaymentMethodTypeCash }
func (Check) Type() PaymentMethodType { return PaymentMethodTypeCheck }
func (Card) Type() PaymentMethodType  { return PaymentMethodTypeCard }

func (Cash) isPaymentMethod()  {}
func (Check) isPaymentMethod() {}
func (Card) isPaymentMethod()  {}

// PaymentMethodVisitor handles every payment method variant. Adding a variant
// adds a method here, so every visitor has to be revisited.
type PaymentMethodVisitor[T any] interface {
	VisitCash(Cash) T
	VisitCheck(Check) T
	VisitCard(Card) T
}

// VisitPaymentMethod dispatches m to the matching visitor method
func VisitPaymentMethod[T any](m PaymentMethod, v PaymentMethodVisitor[T]) T {
	switch method := m.(type) {
	case Cash:
		return v.VisitCash(method)
	case Check:
		return v.VisitCheck(method)
	case Card:
		return v.VisitCard(method)
	case nil:
		panic("domain: nil payment method")
	default:
		panic(fmt.Sprintf("domain: unhandled payment method %T", m))
	}
}

// PaymentMethodMatcher adapts three functions into a PaymentMethodVisitor
type PaymentMethodMatcher[T any] struct {
	Cash  func(Cash) T
	Check func(Check) T
	Card  func(Card) T
}

func (m PaymentMethodMatcher[T]) VisitCash(c Cash) T   { return m.Cash(c) }
func (m PaymentMethodMatcher[T]) VisitCheck(c Check) T { return m.Check(c) }
func (m PaymentMethodMatcher[T]) VisitCard(c Card) T   { return m.Card(c) }

type methodClause struct{}

func (methodClause) VisitCash(Cash) string {
	return "cash"
}

func (methodClause) VisitCheck(c Check) string {
	return fmt.Sprintf("a check with number %d", c.Number)
}

func (methodClause) VisitCard(c Card) string {
	return fmt.Sprintf("a credit card %s with check number %d", c.CreditCard.Number, c.CreditCard.CheckNumber)
}

// DescribePaymentMethod returns the clause used in payment descriptions
func DescribePaymentMethod(m PaymentMethod) string {
	return VisitPaymentMethod[string](m, methodClause{})
}
