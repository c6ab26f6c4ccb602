package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/draftea/feature-showcase/shared/events"
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPaymentEventHandlers_Handle(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewPaymentEventHandlers(zap.New(core))

	record := domain.RecordPayment(domain.NewPayment(800, domain.CurrencyCAD, domain.Check{Number: 123456}))
	evt := record.Events()[0]

	require.NoError(t, handler.Handle(context.Background(), evt))

	entries := logs.FilterMessage("payment recorded").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, record.ID.String(), fields["payment_id"])
	assert.Equal(t, "check", fields["method"])
	assert.Equal(t, int32(800), fields["amount_in_cent"])
}

func TestPaymentEventHandlers_Handle_RawPayload(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewPaymentEventHandlers(zap.New(core))

	evt := events.NewEvent("", events.PaymentRecordedEvent,
		json.RawMessage(`{"payment_id":"550e8400-e29b-41d4-a716-446655440020","amount_in_cent":5,"currency":"EUR","method_type":"cash"}`))

	require.NoError(t, handler.Handle(context.Background(), evt))
	assert.Equal(t, 1, logs.Len())
}

func TestPaymentEventHandlers_Handle_Invalid(t *testing.T) {
	handler := NewPaymentEventHandlers(zap.NewNop())

	err := handler.Handle(context.Background(), events.NewEvent("", events.PaymentRecordedEvent, json.RawMessage(`{}`)))
	assert.EqualError(t, err, "payment_id is required")

	err = handler.Handle(context.Background(), events.NewEvent("", events.PaymentRecordedEvent, json.RawMessage(`not json`)))
	assert.Error(t, err)

	assert.NoError(t, handler.Handle(context.Background(), events.NewEvent("", "payment.unknown", nil)))
}
