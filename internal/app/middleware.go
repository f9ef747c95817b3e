package app

import (
	httpMW "github.com/RodCinelli/gestao-engparente/internal/http/middleware"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	if !cfg.AuthRequired {
		log.Warn("AUTH_REQUIRED is off; API and websocket routes accept anonymous requests")
	}
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth, cfg.AuthRequired),
	}
}
