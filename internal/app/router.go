package app

import (
	"github.com/gin-gonic/gin"

	"github.com/RodCinelli/gestao-engparente/internal/http"
	"github.com/RodCinelli/gestao-engparente/internal/observability"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	serviceName := ""
	if cfg.OtelEnabled {
		serviceName = cfg.OtelServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:              log,
		ServiceName:      serviceName,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		Metrics:          metrics,
		HealthHandler:    handlers.Health,
		UserHandler:      handlers.User,
		AuthMiddleware:   middleware.Auth,
		RealtimeHandler:  handlers.Realtime,
		EmployeeHandler:  handlers.Employee,
		ReferenceHandler: handlers.Reference,
		DashboardHandler: handlers.Dashboard,
		FinancialHandler: handlers.Financial,
	})
}
