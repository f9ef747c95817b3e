package app

import (
	"context"

	httpH "github.com/RodCinelli/gestao-engparente/internal/http/handlers"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	User      *httpH.UserHandler
	Realtime  *httpH.RealtimeHandler
	Employee  *httpH.EmployeeHandler
	Reference *httpH.ReferenceHandler
	Dashboard *httpH.DashboardHandler
	Financial *httpH.FinancialHandler
}

func wireHandlers(ctx context.Context, log *logger.Logger, cfg Config, services Services, hub *realtime.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		User:   httpH.NewUserHandler(services.Auth),
		Realtime: httpH.NewRealtimeHandler(ctx, log, hub, services.EmployeesViews, services.FinancialsViews,
			httpH.RealtimeConfig{
				AllowedOrigins: cfg.CORSAllowedOrigins,
				SendBuffer:     cfg.WSSendBuffer,
				PingInterval:   cfg.WSPingInterval,
			}),
		Employee:  httpH.NewEmployeeHandler(services.Employees),
		Reference: httpH.NewReferenceHandler(services.Reference),
		Dashboard: httpH.NewDashboardHandler(services.Dashboard),
		Financial: httpH.NewFinancialHandler(services.Financial),
	}
}
