package infrastructure

import (
	"context"
	"strings"
	"testing"

	"github.com/draftea/feature-showcase/shared/models"
	"github.com/draftea/feature-showcase/showcase-service/application"
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestRepository(t *testing.T) *SQLPaymentRepository {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a fresh database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLPaymentRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, repo.EnsureSchema(context.Background()), "schema creation is idempotent")
	return repo
}

func TestSQLPaymentRepository_SaveAndFind(t *testing.T) {
	tests := []struct {
		name    string
		payment domain.Payment
	}{
		{
			name:    "cash",
			payment: domain.NewPayment(250, domain.CurrencyEUR, domain.Cash{}),
		},
		{
			name:    "check",
			payment: domain.NewPayment(800, domain.CurrencyCAD, domain.Check{Number: 4294967295}),
		},
		{
			name: "card",
			payment: domain.NewPayment(1000, domain.CurrencyUSD, domain.Card{
				CreditCard: domain.NewCreditCard(88866, "1234 5678 9012 3456"),
			}),
		},
		{
			name:    "negative amount",
			payment: domain.NewPayment(-42, domain.CurrencyGBP, domain.Cash{}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t)
			ctx := context.Background()
			record := domain.RecordPayment(tt.payment)

			require.NoError(t, repo.Save(ctx, record))

			found, err := repo.FindByID(ctx, record.ID)
			require.NoError(t, err)
			require.NotNil(t, found)

			assert.Equal(t, record.ID, found.ID)
			assert.Equal(t, tt.payment, found.Payment)
			assert.Equal(t, tt.payment.Describe(), found.Payment.Describe())
			assert.True(t, record.Timestamps.CreatedAt.Equal(found.Timestamps.CreatedAt))
			assert.Empty(t, found.Events())
		})
	}
}

func TestSQLPaymentRepository_FindByID_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	found, err := repo.FindByID(context.Background(), models.GenerateUUID())

	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestSQLPaymentRepository_Save_DuplicateID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	record := domain.RecordPayment(domain.NewPayment(1, domain.CurrencyUSD, domain.Cash{}))

	require.NoError(t, repo.Save(ctx, record))
	err := repo.Save(ctx, record)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert payment")
}

func TestSQLPaymentRepository_GetPaymentAcceptsNonCanonicalIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	record := domain.RecordPayment(domain.NewPayment(250, domain.CurrencyEUR, domain.Cash{}))
	require.NoError(t, repo.Save(ctx, record))

	id := record.ID.String()
	for _, form := range []string{id, strings.ToUpper(id), "urn:uuid:" + id, "{" + id + "}"} {
		t.Run(form, func(t *testing.T) {
			resp, err := application.NewGetPayment(repo).Execute(ctx, &application.GetPaymentQuery{PaymentID: form})

			require.NoError(t, err)
			assert.Equal(t, id, resp.PaymentID)
			assert.Equal(t, "An amount of 250 in cents, was paid in Eur using cash", resp.Description)
		})
	}
}
