package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http/handlers"
	httpMW "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http/middleware"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/observability"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	CourseHandler     *httpH.CourseHandler
	CategoryHandler   *httpH.CategoryHandler
	EnrollmentHandler *httpH.EnrollmentHandler
	AnalyticsHandler  *httpH.AnalyticsHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	admin := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.AuthMiddleware == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{cfg.AuthMiddleware.RequireAdmin(), h}
	}

	api := r.Group("/api")
	{
		// Courses
		if cfg.CourseHandler != nil {
			api.GET("/courses", cfg.CourseHandler.ListCourses)
			api.GET("/courses/:id", cfg.CourseHandler.GetCourse)
			api.POST("/courses", admin(cfg.CourseHandler.CreateCourse)...)
			api.PATCH("/courses/:id", admin(cfg.CourseHandler.UpdateCourse)...)
			api.PUT("/courses/:id", admin(cfg.CourseHandler.UpdateCourse)...)
			api.DELETE("/courses/:id", admin(cfg.CourseHandler.DeleteCourse)...)
		}

		// Categories
		if cfg.CategoryHandler != nil {
			api.GET("/categories", cfg.CategoryHandler.ListCategories)
			api.GET("/categories/:id", cfg.CategoryHandler.GetCategory)
		}

		// Enrollment (public) and roster views (admin)
		if cfg.EnrollmentHandler != nil {
			api.POST("/enrollments", cfg.EnrollmentHandler.Enroll)
			api.GET("/students/lookup", cfg.EnrollmentHandler.LookupStudent)
			api.GET("/courses/:id/students", admin(cfg.EnrollmentHandler.ListCourseStudents)...)
			api.GET("/students/:id/courses", admin(cfg.EnrollmentHandler.ListStudentCourses)...)
		}

		// Analytics
		if cfg.AnalyticsHandler != nil {
			api.GET("/analytics/stats", cfg.AnalyticsHandler.Stats)
			api.GET("/analytics/summary", admin(cfg.AnalyticsHandler.Summary)...)
		}
	}

	return r
}
