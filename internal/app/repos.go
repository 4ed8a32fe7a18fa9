package app

import (
	"gorm.io/gorm"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

type Repos struct {
	Course     repos.CourseRepo
	Category   repos.CategoryRepo
	Student    repos.StudentRepo
	Enrollment repos.CourseEnrollmentRepo
	Post       repos.PostRepo
	Subscriber repos.SubscriberRepo
	Campaign   repos.CampaignRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Course:     repos.NewCourseRepo(db, log),
		Category:   repos.NewCategoryRepo(db, log),
		Student:    repos.NewStudentRepo(db, log),
		Enrollment: repos.NewCourseEnrollmentRepo(db, log),
		Post:       repos.NewPostRepo(db, log),
		Subscriber: repos.NewSubscriberRepo(db, log),
		Campaign:   repos.NewCampaignRepo(db, log),
	}
}
