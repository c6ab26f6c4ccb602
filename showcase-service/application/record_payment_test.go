package application

import (
	"context"
	"testing"

	"github.com/draftea/feature-showcase/shared/events"
	"github.com/draftea/feature-showcase/shared/models"
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/draftea/feature-showcase/showcase-service/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func uint32Ptr(v uint32) *uint32 { return &v }
func stringPtr(v string) *string { return &v }

func TestRecordPayment_Execute(t *testing.T) {
	checkCommand := &PaymentCommand{
		AmountInCent:      800,
		Currency:          "CAD",
		PaymentMethodType: "check",
		CheckNumber:       uint32Ptr(123456),
	}

	tests := []struct {
		name          string
		cmd           *PaymentCommand
		setupMocks    func(*mocks.MockPaymentRepository, *mocks.MockPublisher)
		expectedError string
		validation    bool
		expectedDesc  string
	}{
		{
			name: "check payment recorded and published",
			cmd:  checkCommand,
			setupMocks: func(repo *mocks.MockPaymentRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.PaymentRecord")).
					Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					var data domain.PaymentRecordedData
					if err := evt.UnmarshalPayload(&data); err != nil {
						return false
					}
					return evt.EventType == events.PaymentRecordedEvent &&
						evt.CorrelationID == "" &&
						data.MethodType == "check" &&
						data.Currency == "CAD" &&
						data.CheckNumber != nil && *data.CheckNumber == 123456
				})).Return(nil).Once()
			},
			expectedDesc: "An amount of 800 in cents, was paid in Cad using a check with number 123456",
		},
		{
			name: "negative amount rejected before persistence",
			cmd: &PaymentCommand{
				AmountInCent:      -1,
				Currency:          "USD",
				PaymentMethodType: "cash",
			},
			setupMocks:    func(*mocks.MockPaymentRepository, *mocks.MockPublisher) {},
			expectedError: "amount cannot be negative",
			validation:    true,
		},
		{
			name: "card without card number rejected",
			cmd: &PaymentCommand{
				AmountInCent:      10,
				Currency:          "GBP",
				PaymentMethodType: "card",
				CheckNumber:       uint32Ptr(1),
			},
			setupMocks:    func(*mocks.MockPaymentRepository, *mocks.MockPublisher) {},
			expectedError: "card_number is required for card payment method",
			validation:    true,
		},
		{
			name: "save fails",
			cmd:  checkCommand,
			setupMocks: func(repo *mocks.MockPaymentRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).
					Return(errors.New("connection refused")).Once()
			},
			expectedError: "failed to save payment",
		},
		{
			name: "publish fails",
			cmd:  checkCommand,
			setupMocks: func(repo *mocks.MockPaymentRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).
					Return(errors.New("topic not found")).Once()
			},
			expectedError: "failed to publish events",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockPaymentRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)
			tt.setupMocks(mockRepo, mockPublisher)

			useCase := NewRecordPayment(mockRepo, mockPublisher)

			result, err := useCase.Execute(context.Background(), tt.cmd)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Equal(t, tt.validation, IsValidationError(err))
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.PaymentID)
			assert.Equal(t, tt.expectedDesc, result.Description)
		})
	}
}

func TestRecordPayment_SavedRecordMatchesResponse(t *testing.T) {
	mockRepo := mocks.NewMockPaymentRepository(t)
	mockPublisher := mocks.NewMockPublisher(t)

	var saved *domain.PaymentRecord
	mockRepo.EXPECT().Save(mock.Anything, mock.Anything).
		Run(func(_ context.Context, record *domain.PaymentRecord) {
			saved = record
		}).Return(nil).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	result, err := NewRecordPayment(mockRepo, mockPublisher).Execute(context.Background(), &PaymentCommand{
		AmountInCent:      1000,
		Currency:          "usd",
		PaymentMethodType: "card",
		CheckNumber:       uint32Ptr(88866),
		CardNumber:        stringPtr("1234 5678 9012 3456"),
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, saved.ID.String(), result.PaymentID)
	assert.Equal(t, saved.Payment.Describe(), result.Description)
	assert.Empty(t, saved.Events(), "events are cleared once published")
}

func TestRecordPayment_StampsCorrelationID(t *testing.T) {
	mockRepo := mocks.NewMockPaymentRepository(t)
	mockPublisher := mocks.NewMockPublisher(t)
	correlationID := models.ID("req-000042")

	mockRepo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
		return evt.CorrelationID == correlationID
	})).Return(nil).Once()

	ctx := events.ContextWithCorrelationID(context.Background(), correlationID)
	_, err := NewRecordPayment(mockRepo, mockPublisher).Execute(ctx, &PaymentCommand{
		AmountInCent:      5,
		Currency:          "USD",
		PaymentMethodType: "cash",
	})

	require.NoError(t, err)
}
