package application

import (
	"context"
	"fmt"

	"github.com/draftea/feature-showcase/shared/telemetry"
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/pkg/errors"
)

const (
	RoleManager = "manager"
	RoleWorker  = "worker"
)

// EmployeeSpec is the wire form of an employee tree
type EmployeeSpec struct {
	Name         string         `json:"name"`
	Role         string         `json:"role"`
	Manager      string         `json:"manager,omitempty"`
	Subordinates []EmployeeSpec `json:"subordinates,omitempty"`
}

// DescribeStaffResponse lists one line per employee, the root first
type DescribeStaffResponse struct {
	Lines     []string `json:"lines"`
	Headcount int      `json:"headcount"`
}

// DescribeStaff describes an employee hierarchy
type DescribeStaff struct{}

// NewDescribeStaff creates a new DescribeStaff use case
func NewDescribeStaff() *DescribeStaff {
	return &DescribeStaff{}
}

// Execute executes the describe staff use case
func (uc *DescribeStaff) Execute(ctx context.Context, spec *EmployeeSpec) (*DescribeStaffResponse, error) {
	_, span := telemetry.StartSpan(ctx, "describe_staff")
	defer span.End()

	if spec == nil {
		return nil, errors.Wrap(invalid("employee is required"), "invalid command")
	}

	employee, err := spec.toEmployee("")
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "invalid command")
	}

	return &DescribeStaffResponse{
		Lines:     DescribeHierarchy(employee),
		Headcount: domain.Headcount(employee),
	}, nil
}

type hierarchyDescriber struct{}

func (h hierarchyDescriber) VisitManager(m domain.Manager) []string {
	lines := []string{domain.DescribeEmployee(m)}
	for _, subordinate := range m.Subordinates {
		lines = append(lines, domain.VisitEmployee[[]string](subordinate, h)...)
	}
	return lines
}

func (hierarchyDescriber) VisitWorker(w domain.Worker) []string {
	return []string{domain.DescribeEmployee(w)}
}

// DescribeHierarchy describes e and then everyone below it, depth first
func DescribeHierarchy(e domain.Employee) []string {
	return domain.VisitEmployee[[]string](e, hierarchyDescriber{})
}

// toEmployee builds the tree; a worker without an explicit manager reports to its parent
func (spec EmployeeSpec) toEmployee(parent string) (domain.Employee, error) {
	if spec.Name == "" {
		return nil, invalid("employee name is required")
	}

	switch spec.Role {
	case RoleManager:
		subordinates := make([]domain.Employee, 0, len(spec.Subordinates))
		for _, sub := range spec.Subordinates {
			employee, err := sub.toEmployee(spec.Name)
			if err != nil {
				return nil, err
			}
			subordinates = append(subordinates, employee)
		}
		return domain.Manager{Name: spec.Name, Subordinates: subordinates}, nil
	case RoleWorker:
		if len(spec.Subordinates) > 0 {
			return nil, invalid(fmt.Sprintf("worker %s cannot have subordinates", spec.Name))
		}
		manager := spec.Manager
		if manager == "" {
			manager = parent
		}
		if manager == "" {
			return nil, invalid(fmt.Sprintf("worker %s needs a manager", spec.Name))
		}
		return domain.Worker{Name: spec.Name, Manager: manager}, nil
	default:
		return nil, invalid(fmt.Sprintf("unknown role: %q", spec.Role))
	}
}
