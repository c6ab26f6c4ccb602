package domain

import "fmt"

type EmployeeName = string

// Employee is either a Manager or a Worker
type Employee interface {
	EmployeeName() EmployeeName
	isEmployee()
}

type Manager struct {
	Name         EmployeeName
	Subordinates []Employee
}

type Worker struct {
	Name    EmployeeName
	Manager string
}

func (m Manager) EmployeeName() EmployeeName { return m.Name }
func (w Worker) EmployeeName() EmployeeName  { return w.Name }

func (Manager) isEmployee() {}
func (Worker) isEmployee()  {}

// EmployeeVisitor handles every employee variant
type EmployeeVisitor[T any] interface {
	VisitManager(Manager) T
	VisitWorker(Worker) T
}

// VisitEmployee dispatches e to the matching visitor method
func VisitEmployee[T any](e Employee, v EmployeeVisitor[T]) T {
	switch employee := e.(type) {
	case Manager:
		return v.VisitManager(employee)
	case Worker:
		return v.VisitWorker(employee)
	case nil:
		panic("domain: nil employee")
	default:
		panic(fmt.Sprintf("domain: unhandled employee %T", e))
	}
}

type employeeDescriber struct{}

func (employeeDescriber) VisitManager(m Manager) string {
	return fmt.Sprintf("Manager: %s with %d subordinates", m.Name, len(m.Subordinates))
}

func (employeeDescriber) VisitWorker(w Worker) string {
	return fmt.Sprintf("Worker: %s managed by %s", w.Name, w.Manager)
}

// DescribeEmployee returns a one line description of an employee
func DescribeEmployee(e Employee) string {
	return VisitEmployee[string](e, employeeDescriber{})
}

type headcount struct{}

func (h headcount) VisitManager(m Manager) int {
	total := 1
	for _, subordinate := range m.Subordinates {
		total += VisitEmployee[int](subordinate, h)
	}
	return total
}

func (headcount) VisitWorker(Worker) int {
	return 1
}

// Headcount counts e and everyone below it
func Headcount(e Employee) int {
	return VisitEmployee[int](e, headcount{})
}
