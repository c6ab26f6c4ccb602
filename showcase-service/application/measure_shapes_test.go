package application

import (
	"context"
	"testing"

	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureShapes_Execute(t *testing.T) {
	result, err := NewMeasureShapes().Execute(context.Background(), &MeasureShapesCommand{
		Shapes: []domain.ShapeSpec{
			{Kind: "rectangle", Width: 3, Height: 4},
			{Kind: "circle", Radius: 5},
		},
	})
	require.NoError(t, err)

	expected := &MeasureShapesResponse{
		Shapes: []ShapeArea{
			{Kind: "rectangle", Area: 12, Description: "rectangle width: 3 * height: 4 = area: 12"},
			{Kind: "circle", Area: 78.5398, Description: "circle radius: 5 = area: 78.53981633974483"},
		},
		TotalArea: 90.5398,
	}
	if diff := cmp.Diff(expected, result, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("unexpected response (-want +got):\n%s", diff)
	}
}

func TestMeasureShapes_Execute_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		cmd           *MeasureShapesCommand
		expectedError string
	}{
		{
			name:          "nil command",
			cmd:           nil,
			expectedError: "at least one shape is required",
		},
		{
			name:          "no shapes",
			cmd:           &MeasureShapesCommand{},
			expectedError: "at least one shape is required",
		},
		{
			name: "unknown kind",
			cmd: &MeasureShapesCommand{Shapes: []domain.ShapeSpec{
				{Kind: "circle", Radius: 1},
				{Kind: "triangle"},
			}},
			expectedError: `shape 1: unknown shape kind: "triangle"`,
		},
		{
			name: "negative radius",
			cmd: &MeasureShapesCommand{Shapes: []domain.ShapeSpec{
				{Kind: "circle", Radius: -2},
			}},
			expectedError: "shape 0: dimensions cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewMeasureShapes().Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
			assert.True(t, IsValidationError(err))
			assert.Nil(t, result)
		})
	}
}
