package repos

import (
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos/catalog"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos/content"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos/enrollment"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"gorm.io/gorm"
)

type CourseRepo = catalog.CourseRepo
type CourseFilter = catalog.CourseFilter
type CategoryRepo = catalog.CategoryRepo

type StudentRepo = enrollment.StudentRepo
type CourseEnrollmentRepo = enrollment.CourseEnrollmentRepo

type PostRepo = content.PostRepo
type SubscriberRepo = content.SubscriberRepo
type CampaignRepo = content.CampaignRepo

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return catalog.NewCourseRepo(db, baseLog)
}
func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return catalog.NewCategoryRepo(db, baseLog)
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return enrollment.NewStudentRepo(db, baseLog)
}
func NewCourseEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) CourseEnrollmentRepo {
	return enrollment.NewCourseEnrollmentRepo(db, baseLog)
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo { return content.NewPostRepo(db, baseLog) }
func NewSubscriberRepo(db *gorm.DB, baseLog *logger.Logger) SubscriberRepo {
	return content.NewSubscriberRepo(db, baseLog)
}
func NewCampaignRepo(db *gorm.DB, baseLog *logger.Logger) CampaignRepo {
	return content.NewCampaignRepo(db, baseLog)
}
