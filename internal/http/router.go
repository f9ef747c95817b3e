package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/RodCinelli/gestao-engparente/internal/http/handlers"
	httpMW "github.com/RodCinelli/gestao-engparente/internal/http/middleware"
	"github.com/RodCinelli/gestao-engparente/internal/observability"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics

	UserHandler     *httpH.UserHandler
	AuthMiddleware  *httpMW.AuthMiddleware
	RealtimeHandler *httpH.RealtimeHandler

	EmployeeHandler  *httpH.EmployeeHandler
	ReferenceHandler *httpH.ReferenceHandler
	DashboardHandler *httpH.DashboardHandler
	FinancialHandler *httpH.FinancialHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	if cfg.Metrics != nil {
		r.Use(httpMW.Metrics(cfg.Metrics))
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Users (public)
	if cfg.UserHandler != nil {
		api.POST("/users/register/", cfg.UserHandler.Register)
		api.POST("/users/login/", cfg.UserHandler.Login)
		api.POST("/users/token/refresh/", cfg.UserHandler.Refresh)
	}

	protected := api.Group("/")
	ws := r.Group("/ws")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
		ws.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// Users (protected)
	if cfg.UserHandler != nil {
		protected.GET("/users/", cfg.UserHandler.List)
		protected.GET("/users/me/", cfg.UserHandler.GetMe)
		protected.POST("/users/logout/", cfg.UserHandler.Logout)
	}

	// Employees
	if h := cfg.EmployeeHandler; h != nil {
		protected.GET("/employees/", h.List)
		protected.POST("/employees/", h.Create)
		protected.POST("/employees/reset_payments/", h.ResetAllPayments)
		protected.GET("/employees/:id/", h.Get)
		protected.PUT("/employees/:id/", h.Update)
		protected.PATCH("/employees/:id/", h.Update)
		protected.DELETE("/employees/:id/", h.Delete)
		protected.POST("/employees/:id/register_payment/", h.RegisterPayment)
		protected.POST("/employees/:id/mark_as_paid/", h.MarkAsPaid)
		protected.POST("/employees/:id/reset_payment/", h.ResetPayment)
	}

	// Departments, constructions, sectors
	if h := cfg.ReferenceHandler; h != nil {
		protected.GET("/departments/", h.ListDepartments)
		protected.POST("/departments/", h.CreateDepartment)
		protected.GET("/departments/:id/", h.GetDepartment)
		protected.PUT("/departments/:id/", h.UpdateDepartment)
		protected.PATCH("/departments/:id/", h.UpdateDepartment)
		protected.DELETE("/departments/:id/", h.DeleteDepartment)

		protected.GET("/constructions/", h.ListConstructions)
		protected.POST("/constructions/", h.CreateConstruction)
		protected.GET("/constructions/:id/", h.GetConstruction)
		protected.PUT("/constructions/:id/", h.UpdateConstruction)
		protected.PATCH("/constructions/:id/", h.UpdateConstruction)
		protected.DELETE("/constructions/:id/", h.DeleteConstruction)

		protected.GET("/construction-sectors/", h.ListSectors)
		protected.POST("/construction-sectors/", h.CreateSector)
		protected.GET("/construction-sectors/:id/", h.GetSector)
		protected.PUT("/construction-sectors/:id/", h.UpdateSector)
		protected.PATCH("/construction-sectors/:id/", h.UpdateSector)
		protected.DELETE("/construction-sectors/:id/", h.DeleteSector)
	}

	// Dashboard
	if cfg.DashboardHandler != nil {
		protected.GET("/dashboard/", cfg.DashboardHandler.Get)
	}

	// Financials
	if h := cfg.FinancialHandler; h != nil {
		resource(protected, "/materials", h.Materials())
		resource(protected, "/categories", h.Categories())
		resource(protected, "/expenses", h.Expenses())
		resource(protected, "/transactions", h.Transactions())
		protected.GET("/financials/summary/", h.Summary)
	}

	// Realtime (websocket)
	if cfg.RealtimeHandler != nil {
		ws.GET("/employees/", cfg.RealtimeHandler.Employees)
		ws.GET("/financials/", cfg.RealtimeHandler.Financials)
	}

	return r
}

func resource(g *gin.RouterGroup, base string, h httpH.Resource) {
	g.GET(base+"/", h.List)
	g.POST(base+"/", h.Create)
	g.GET(base+"/:id/", h.Get)
	g.PUT(base+"/:id/", h.Update)
	g.PATCH(base+"/:id/", h.Update)
	g.DELETE(base+"/:id/", h.Delete)
}
