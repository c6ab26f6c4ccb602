package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/draftea/feature-showcase/showcase-service/application"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandlers serves the shape and staff operations
type CatalogHandlers struct {
	measureShapes *application.MeasureShapes
	describeStaff *application.DescribeStaff
	logger        *zap.Logger
}

func NewCatalogHandlers(
	measureShapes *application.MeasureShapes,
	describeStaff *application.DescribeStaff,
	logger *zap.Logger,
) *CatalogHandlers {
	return &CatalogHandlers{
		measureShapes: measureShapes,
		describeStaff: describeStaff,
		logger:        logger,
	}
}

// MeasureShapes computes the area of every posted shape
func (h *CatalogHandlers) MeasureShapes(w http.ResponseWriter, r *http.Request) {
	var cmd application.MeasureShapesCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.measureShapes.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// DescribeStaff describes a posted employee tree
func (h *CatalogHandlers) DescribeStaff(w http.ResponseWriter, r *http.Request) {
	var spec application.EmployeeSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.describeStaff.Execute(r.Context(), &spec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers shape and staff routes
func (h *CatalogHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/shapes/area", h.MeasureShapes)
	r.Post("/staff/describe", h.DescribeStaff)
}
