package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	dataagg "github.com/RodCinelli/gestao-engparente/internal/data/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	"github.com/RodCinelli/gestao-engparente/internal/domain/employees"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

// DashboardService computes the payroll dashboard from current state. The
// snapshot is rebuilt on every call.
type DashboardService interface {
	Snapshot(ctx context.Context) (employees.DashboardSnapshot, error)
}

type dashboardService struct {
	log           *logger.Logger
	runner        dataagg.TxRunner
	employees     repos.EmployeeRepo
	constructions repos.ConstructionRepo
	departments   repos.DepartmentRepo
}

func NewDashboardService(
	log *logger.Logger,
	runner dataagg.TxRunner,
	employeeRepo repos.EmployeeRepo,
	constructions repos.ConstructionRepo,
	departments repos.DepartmentRepo,
) DashboardService {
	return &dashboardService{
		log:           log.With("service", "DashboardService"),
		runner:        runner,
		employees:     employeeRepo,
		constructions: constructions,
		departments:   departments,
	}
}

func (s *dashboardService) Snapshot(ctx context.Context) (employees.DashboardSnapshot, error) {
	ctx, span := otel.Tracer("gestao/services").Start(ctx, "dashboard.snapshot")
	defer span.End()

	var in employees.DashboardInput
	// One transaction so the three reads see the same state.
	err := s.runner.InTx(ctx, func(dbc dbctx.Context) error {
		rows, err := s.employees.ListPayroll(dbc)
		if err != nil {
			return err
		}
		active, err := s.constructions.List(dbc, true)
		if err != nil {
			return err
		}
		depts, err := s.departments.Count(dbc)
		if err != nil {
			return err
		}
		in = employees.DashboardInput{Employees: rows, ActiveConstructions: active, TotalDepartments: int(depts)}
		return nil
	})
	if err != nil {
		mapped := dataagg.MapError("dashboard.snapshot", err)
		span.RecordError(mapped)
		span.SetStatus(codes.Error, "load failed")
		return employees.DashboardSnapshot{}, mapped
	}

	snap := employees.ComputeDashboard(in)
	span.SetAttributes(
		attribute.Int("dashboard.employees", snap.TotalEmployees),
		attribute.Int("dashboard.constructions", snap.TotalConstructions),
	)
	return snap, nil
}
