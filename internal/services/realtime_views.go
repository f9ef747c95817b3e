package services

import (
	"context"

	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
)

// EmployeesInitialData is the initial_data payload of the employees channel.
type EmployeesInitialData struct {
	Constructions       []types.Construction       `json:"constructions"`
	Departments         []types.Department         `json:"departments"`
	ConstructionSectors []types.ConstructionSector `json:"construction_sectors"`
}

// FinancialsInitialData is the initial_data payload of the financials channel.
type FinancialsInitialData struct {
	Materials  []types.Material        `json:"materials"`
	Categories []types.ExpenseCategory `json:"categories"`
}

type employeesViews struct {
	reference ReferenceService
	employees EmployeeService
	dashboard DashboardService
}

// NewEmployeesViews serves the employees websocket views from the services.
func NewEmployeesViews(reference ReferenceService, employeeSvc EmployeeService, dashboard DashboardService) realtime.EmployeesSource {
	return &employeesViews{reference: reference, employees: employeeSvc, dashboard: dashboard}
}

func (v *employeesViews) InitialData(ctx context.Context) (any, error) {
	constructions, err := v.reference.ListConstructions(ctx, true)
	if err != nil {
		return nil, err
	}
	departments, err := v.reference.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	sectors, err := v.reference.ListSectors(ctx, nil)
	if err != nil {
		return nil, err
	}
	return EmployeesInitialData{
		Constructions:       nonNil(constructions),
		Departments:         nonNil(departments),
		ConstructionSectors: nonNil(sectors),
	}, nil
}

func (v *employeesViews) Employees(ctx context.Context) (any, error) {
	rows, err := v.employees.List(ctx, repos.EmployeeFilter{})
	if err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

func (v *employeesViews) Dashboard(ctx context.Context) (any, error) {
	return v.dashboard.Snapshot(ctx)
}

type financialsViews struct {
	svc FinancialService
}

func NewFinancialsViews(svc FinancialService) realtime.FinancialsSource {
	return &financialsViews{svc: svc}
}

func (v *financialsViews) InitialData(ctx context.Context) (any, error) {
	materials, err := v.svc.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := v.svc.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return FinancialsInitialData{Materials: nonNil(materials), Categories: nonNil(categories)}, nil
}

func (v *financialsViews) Materials(ctx context.Context) (any, error) {
	rows, err := v.svc.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

func (v *financialsViews) Expenses(ctx context.Context) (any, error) {
	rows, err := v.svc.ListExpenses(ctx, repos.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

func (v *financialsViews) Transactions(ctx context.Context) (any, error) {
	rows, err := v.svc.ListTransactions(ctx, repos.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

func (v *financialsViews) Summary(ctx context.Context) (any, error) {
	return v.svc.Summary(ctx)
}

// nonNil keeps empty lists serialized as [] rather than null.
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
