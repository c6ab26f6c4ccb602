package domain

import (
	"fmt"
	"math"
)

type ShapeKind string

const (
	ShapeKindRectangle ShapeKind = "rectangle"
	ShapeKindCircle    ShapeKind = "circle"
)

// Shape is anything with an area. Rectangle and Circle are the only variants.
type Shape interface {
	Area() float64
	Kind() ShapeKind
	isShape()
}

type Rectangle struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Circle struct {
	Radius float64 `json:"radius"`
}

func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (Rectangle) Kind() ShapeKind { return ShapeKindRectangle }
func (Circle) Kind() ShapeKind    { return ShapeKindCircle }

func (Rectangle) isShape() {}
func (Circle) isShape()    {}

// AreaOf computes the area of a shape whose concrete type is known to the caller
func AreaOf[S Shape](shape S) float64 {
	return shape.Area()
}

// Shapes owns a mixed collection of shapes; every call dispatches through the interface
type Shapes []Shape

// Areas returns the area of every shape in order
func (s Shapes) Areas() []float64 {
	areas := make([]float64, len(s))
	for i, shape := range s {
		areas[i] = shape.Area()
	}
	return areas
}

// TotalArea sums the area of every shape
func (s Shapes) TotalArea() float64 {
	var total float64
	for _, shape := range s {
		total += shape.Area()
	}
	return total
}

// ShapeVisitor handles every shape variant
type ShapeVisitor[T any] interface {
	VisitRectangle(Rectangle) T
	VisitCircle(Circle) T
}

// VisitShape dispatches s to the matching visitor method
func VisitShape[T any](s Shape, v ShapeVisitor[T]) T {
	switch shape := s.(type) {
	case Rectangle:
		return v.VisitRectangle(shape)
	case Circle:
		return v.VisitCircle(shape)
	case nil:
		panic("domain: nil shape")
	default:
		panic(fmt.Sprintf("domain: unhandled shape %T", s))
	}
}

type shapeDescriber struct{}

func (shapeDescriber) VisitRectangle(r Rectangle) string {
	return fmt.Sprintf("rectangle width: %v * height: %v = area: %v", r.Width, r.Height, r.Area())
}

func (shapeDescriber) VisitCircle(c Circle) string {
	return fmt.Sprintf("circle radius: %v = area: %v", c.Radius, c.Area())
}

// DescribeShape returns the dimensions and area of a shape
func DescribeShape(s Shape) string {
	return VisitShape[string](s, shapeDescriber{})
}

// ShapeSpec is the flat form of a shape used at the edges (JSON, CLI flags)
type ShapeSpec struct {
	Kind   string  `json:"kind"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Radius float64 `json:"radius,omitempty"`
}

// NewShape builds a shape from its flat form
func NewShape(spec ShapeSpec) (Shape, error) {
	switch ShapeKind(spec.Kind) {
	case ShapeKindRectangle:
		return Rectangle{Width: spec.Width, Height: spec.Height}, nil
	case ShapeKindCircle:
		return Circle{Radius: spec.Radius}, nil
	default:
		return nil, fmt.Errorf("unknown shape kind: %q", spec.Kind)
	}
}

// HasNegativeDimension reports whether any dimension of s is below zero
func HasNegativeDimension(s Shape) bool {
	return VisitShape[bool](s, negativeDimension{})
}

type negativeDimension struct{}

func (negativeDimension) VisitRectangle(r Rectangle) bool { return r.Width < 0 || r.Height < 0 }
func (negativeDimension) VisitCircle(c Circle) bool       { return c.Radius < 0 }
