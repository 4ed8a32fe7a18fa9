package app

import (
	httpMW "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http/middleware"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}
