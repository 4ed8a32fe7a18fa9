package domain

import (
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain/catalog"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain/content"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain/enrollment"
)

const (
	CourseStatusDraft     = catalog.CourseStatusDraft
	CourseStatusPublished = catalog.CourseStatusPublished
	CourseStatusArchived  = catalog.CourseStatusArchived

	DifficultyBeginner     = catalog.DifficultyBeginner
	DifficultyIntermediate = catalog.DifficultyIntermediate
	DifficultyAdvanced     = catalog.DifficultyAdvanced
	DifficultyExpert       = catalog.DifficultyExpert

	DefaultCurrency = catalog.DefaultCurrency

	PostStatusDraft     = content.PostStatusDraft
	PostStatusPublished = content.PostStatusPublished

	SubscriberStatusActive       = content.SubscriberStatusActive
	SubscriberStatusUnsubscribed = content.SubscriberStatusUnsubscribed
)

type CourseStatus = catalog.CourseStatus
type Difficulty = catalog.Difficulty
type Course = catalog.Course
type Category = catalog.Category

type Student = enrollment.Student
type CourseEnrollment = enrollment.CourseEnrollment

type User = content.User
type Post = content.Post
type PostStatus = content.PostStatus
type Subscriber = content.Subscriber
type SubscriberStatus = content.SubscriberStatus
type Campaign = content.Campaign
