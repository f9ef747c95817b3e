package app

import (
	"gorm.io/gorm"

	dataagg "github.com/RodCinelli/gestao-engparente/internal/data/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
	"github.com/RodCinelli/gestao-engparente/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Reference services.ReferenceService
	Employees services.EmployeeService
	Dashboard services.DashboardService
	Financial services.FinancialService
	Seed      services.SeedService

	EmployeesViews  realtime.EmployeesSource
	FinancialsViews realtime.FinancialsSource
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, notifier realtime.Notifier) Services {
	log.Info("Wiring services...")
	runner := dataagg.NewGormTxRunner(db)
	writer := dataagg.NewWriter(runner, log)
	resolver := services.NewResolver(log, r.Department, r.Construction, r.ConstructionSector)

	reference := services.NewReferenceService(log, writer, notifier, resolver,
		r.Department, r.Construction, r.ConstructionSector)
	employees := services.NewEmployeeService(log, writer, notifier, resolver, r.Employee)
	dashboard := services.NewDashboardService(log, runner, r.Employee, r.Construction, r.Department)
	financial := services.NewFinancialService(log, writer, notifier,
		r.Material, r.ExpenseCategory, r.Expense, r.Transaction)

	return Services{
		Auth: services.NewAuthService(log, writer, r.User, r.UserToken,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Reference: reference,
		Employees: employees,
		Dashboard: dashboard,
		Financial: financial,
		Seed: services.NewSeedService(log, writer, resolver,
			r.Department, r.Construction, r.ConstructionSector, r.ExpenseCategory),
		EmployeesViews:  services.NewEmployeesViews(reference, employees, dashboard),
		FinancialsViews: services.NewFinancialsViews(financial),
	}
}
