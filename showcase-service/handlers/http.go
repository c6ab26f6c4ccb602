package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/draftea/feature-showcase/shared/events"
	"github.com/draftea/feature-showcase/shared/models"
	"github.com/draftea/feature-showcase/showcase-service/application"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PaymentHandlers contains payment HTTP handlers
type PaymentHandlers struct {
	describePayment *application.DescribePayment
	recordPayment   *application.RecordPayment
	getPayment      *application.GetPayment
	logger          *zap.Logger
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(
	describePayment *application.DescribePayment,
	recordPayment *application.RecordPayment,
	getPayment *application.GetPayment,
	logger *zap.Logger,
) *PaymentHandlers {
	return &PaymentHandlers{
		describePayment: describePayment,
		recordPayment:   recordPayment,
		getPayment:      getPayment,
		logger:          logger,
	}
}

// DescribePayment formats a payment without storing it
func (h *PaymentHandlers) DescribePayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.PaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.describePayment.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RecordPayment handles payment recording requests
func (h *PaymentHandlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.PaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		ctx = events.ContextWithCorrelationID(ctx, models.ID(reqID))
	}

	response, err := h.recordPayment.Execute(ctx, &cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// GetPayment handles payment retrieval requests
func (h *PaymentHandlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		http.Error(w, "Payment ID is required", http.StatusBadRequest)
		return
	}

	response, err := h.getPayment.Execute(r.Context(), &application.GetPaymentQuery{
		PaymentID: paymentID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.RecordPayment)
		r.Post("/describe", h.DescribePayment)
		r.Get("/{id}", h.GetPayment)
	})
}

// statusFor maps use case errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrPaymentNotFound):
		return http.StatusNotFound
	case application.IsValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
