package app

import (
	"gorm.io/gorm"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/observability"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Course     services.CourseService
	Category   services.CategoryService
	Enrollment services.EnrollmentService
	Analytics  services.AnalyticsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, metrics *observability.Metrics, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	var images services.ImageStore
	if clients.Images != nil {
		images = clients.Images
	}
	var statsCache services.JSONCache
	if clients.StatsCache != nil && cfg.StatsCacheTTL > 0 {
		statsCache = clients.StatsCache
	}

	return Services{
		Auth:       services.NewAuthService(log, cfg.JWTSecretKey),
		Course:     services.NewCourseService(db, log, reposet.Course, reposet.Category, images),
		Category:   services.NewCategoryService(db, log, reposet.Category),
		Enrollment: services.NewEnrollmentService(db, log, metrics, reposet.Course, reposet.Student, reposet.Enrollment),
		Analytics: services.NewAnalyticsService(db, log, metrics, services.AnalyticsDeps{
			Courses:     reposet.Course,
			Students:    reposet.Student,
			Enrollments: reposet.Enrollment,
			Posts:       reposet.Post,
			Subscribers: reposet.Subscriber,
			Campaigns:   reposet.Campaign,
			Cache:       statsCache,
			CacheTTL:    cfg.StatsCacheTTL,
		}),
	}
}
