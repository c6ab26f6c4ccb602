package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/draftea/feature-showcase/shared/models"
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

func init() {
	// modernc.org/sqlite registers as "sqlite", which sqlx does not know about
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const paymentsSchema = `
	CREATE TABLE IF NOT EXISTS payments (
		id             TEXT PRIMARY KEY,
		amount_in_cent INTEGER NOT NULL,
		currency       TEXT NOT NULL,
		method_type    TEXT NOT NULL,
		check_number   BIGINT NULL,
		card_number    TEXT NULL,
		created_at     TIMESTAMP NOT NULL,
		updated_at     TIMESTAMP NOT NULL
	)`

// SQLPaymentRepository implements PaymentRepository on top of sqlx.
// It works against PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).
type SQLPaymentRepository struct {
	db *sqlx.DB
}

// NewSQLPaymentRepository creates a new SQLPaymentRepository
func NewSQLPaymentRepository(db *sqlx.DB) *SQLPaymentRepository {
	return &SQLPaymentRepository{db: db}
}

// sqlPayment represents a payment row
type sqlPayment struct {
	ID           string    `db:"id"`
	AmountInCent int32     `db:"amount_in_cent"`
	Currency     string    `db:"currency"`
	MethodType   string    `db:"method_type"`
	CheckNumber  *int64    `db:"check_number"`
	CardNumber   *string   `db:"card_number"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// EnsureSchema creates the payments table when missing
func (r *SQLPaymentRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, paymentsSchema); err != nil {
		return errors.Wrap(err, "failed to create payments table")
	}
	return nil
}

// Save inserts a recorded payment. Payments are immutable, so there is no update path.
func (r *SQLPaymentRepository) Save(ctx context.Context, record *domain.PaymentRecord) error {
	query := `
		INSERT INTO payments (
			id, amount_in_cent, currency, method_type,
			check_number, card_number, created_at, updated_at
		) VALUES (
			:id, :amount_in_cent, :currency, :method_type,
			:check_number, :card_number, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, r.toRow(record))
	if err != nil {
		return errors.Wrap(err, "failed to insert payment")
	}

	return nil
}

// FindByID finds a payment by ID
func (r *SQLPaymentRepository) FindByID(ctx context.Context, id models.ID) (*domain.PaymentRecord, error) {
	query := r.db.Rebind(`
		SELECT id, amount_in_cent, currency, method_type,
			   check_number, card_number, created_at, updated_at
		FROM payments
		WHERE id = ?`)

	var row sqlPayment
	err := r.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find payment")
	}

	return r.toDomain(&row)
}

func (r *SQLPaymentRepository) toRow(record *domain.PaymentRecord) *sqlPayment {
	payment := record.Payment
	creator := domain.CreatorFromPaymentMethod(payment.Method())

	var checkNumber *int64
	if creator.CheckNumber != nil {
		n := int64(*creator.CheckNumber)
		checkNumber = &n
	}

	return &sqlPayment{
		ID:           record.ID.String(),
		AmountInCent: int32(payment.AmountInCent()),
		Currency:     payment.Currency().Code(),
		MethodType:   payment.Method().Type().String(),
		CheckNumber:  checkNumber,
		CardNumber:   creator.CardNumber,
		CreatedAt:    record.Timestamps.CreatedAt,
		UpdatedAt:    record.Timestamps.UpdatedAt,
	}
}

func (r *SQLPaymentRepository) toDomain(row *sqlPayment) (*domain.PaymentRecord, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID")
	}

	currency, err := domain.NewCurrency(row.Currency)
	if err != nil {
		return nil, errors.Wrap(err, "invalid currency")
	}

	methodType, err := domain.NewPaymentMethodType(row.MethodType)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment method type")
	}

	creator := &domain.PaymentMethodCreator{CardNumber: row.CardNumber}
	if row.CheckNumber != nil {
		n := uint32(*row.CheckNumber)
		creator.CheckNumber = &n
	}

	method, err := domain.NewPaymentMethod(methodType, creator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payment method")
	}

	return &domain.PaymentRecord{
		ID:      id,
		Payment: domain.NewPayment(domain.PaymentAmountInCent(row.AmountInCent), currency, method),
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt.UTC(),
			UpdatedAt: row.UpdatedAt.UTC(),
		},
	}, nil
}
