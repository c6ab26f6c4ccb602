package config

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/draftea/feature-showcase/shared/events"
	"github.com/draftea/feature-showcase/showcase-service/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildDependencies_SQLiteAndMemoryBus(t *testing.T) {
	t.Setenv("ENVIRONMENT", "missing")
	t.Setenv("SHOWCASE_DATABASE_URL", ":memory:")
	t.Setenv("SHOWCASE_TELEMETRY_ENABLED", "false")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	deps, err := BuildDependencies(ctx, cfg, zap.NewNop())
	require.NoError(t, err)

	var (
		mu       sync.Mutex
		received []*events.Event
	)
	require.NoError(t, deps.EventSubscriber.Subscribe(ctx, events.PaymentRecordedEvent,
		events.EventHandlerFunc(func(_ context.Context, evt *events.Event) error {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, evt)
			return nil
		})))

	recorded, err := deps.RecordPayment.Execute(ctx, &application.PaymentCommand{
		AmountInCent:      250,
		Currency:          "EUR",
		PaymentMethodType: "cash",
	})
	require.NoError(t, err)

	found, err := deps.GetPayment.Execute(ctx, &application.GetPaymentQuery{PaymentID: recorded.PaymentID})
	require.NoError(t, err)
	assert.Equal(t, recorded.Description, found.Description)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, time.Second, 10*time.Millisecond)

	assert.NoError(t, deps.Close())
}
