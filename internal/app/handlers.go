package app

import (
	"gorm.io/gorm"

	httpH "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http/handlers"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Course     *httpH.CourseHandler
	Category   *httpH.CategoryHandler
	Enrollment *httpH.EnrollmentHandler
	Analytics  *httpH.AnalyticsHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		Course:     httpH.NewCourseHandler(log, services.Course),
		Category:   httpH.NewCategoryHandler(log, services.Category),
		Enrollment: httpH.NewEnrollmentHandler(log, services.Enrollment),
		Analytics:  httpH.NewAnalyticsHandler(log, services.Analytics),
	}
}
