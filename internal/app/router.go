package app

import (
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/observability"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(":"+cfg.Port, http.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       serviceName,
		AllowedOrigins:    cfg.AllowedOrigins,
		AuthMiddleware:    middleware.Auth,
		CourseHandler:     handlers.Course,
		CategoryHandler:   handlers.Category,
		EnrollmentHandler: handlers.Enrollment,
		AnalyticsHandler:  handlers.Analytics,
		HealthHandler:     handlers.Health,
	})
}
