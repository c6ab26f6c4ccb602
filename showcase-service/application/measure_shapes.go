package application

import (
	"context"
	"fmt"

	"github.com/draftea/feature-showcase/shared/telemetry"
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MeasureShapesCommand lists shapes of mixed kinds
type MeasureShapesCommand struct {
	Shapes []domain.ShapeSpec `json:"shapes"`
}

// ShapeArea is the measured area of one shape
type ShapeArea struct {
	Kind        string  `json:"kind"`
	Area        float64 `json:"area"`
	Description string  `json:"description"`
}

// MeasureShapesResponse holds per shape areas in input order and their sum
type MeasureShapesResponse struct {
	Shapes    []ShapeArea `json:"shapes"`
	TotalArea float64     `json:"total_area"`
}

// MeasureShapes computes areas over a heterogeneous shape collection
type MeasureShapes struct{}

// NewMeasureShapes creates a new MeasureShapes use case
func NewMeasureShapes() *MeasureShapes {
	return &MeasureShapes{}
}

// Execute executes the measure shapes use case
func (uc *MeasureShapes) Execute(ctx context.Context, cmd *MeasureShapesCommand) (*MeasureShapesResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "measure_shapes")
	defer span.End()

	shapes, err := cmd.toShapes()
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "invalid command")
	}
	span.SetAttributes(attribute.Int("shape_count", len(shapes)))

	areas := shapes.Areas()
	response := &MeasureShapesResponse{
		Shapes:    make([]ShapeArea, len(shapes)),
		TotalArea: shapes.TotalArea(),
	}
	for i, shape := range shapes {
		response.Shapes[i] = ShapeArea{
			Kind:        string(shape.Kind()),
			Area:        areas[i],
			Description: domain.DescribeShape(shape),
		}
		telemetry.RecordCounter(ctx, "shapes_measured_total", "Total shapes measured", 1,
			attribute.String("kind", string(shape.Kind())),
		)
	}

	span.AddEvent("shapes_measured", trace.WithAttributes(attribute.Float64("total_area", response.TotalArea)))
	return response, nil
}

// toShapes rejects unknown kinds and negative dimensions
func (cmd *MeasureShapesCommand) toShapes() (domain.Shapes, error) {
	if cmd == nil || len(cmd.Shapes) == 0 {
		return nil, invalid("at least one shape is required")
	}

	shapes := make(domain.Shapes, 0, len(cmd.Shapes))
	for i, spec := range cmd.Shapes {
		shape, err := domain.NewShape(spec)
		if err != nil {
			return nil, invalid(fmt.Sprintf("shape %d: %v", i, err))
		}
		if domain.HasNegativeDimension(shape) {
			return nil, invalid(fmt.Sprintf("shape %d: dimensions cannot be negative", i))
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}
