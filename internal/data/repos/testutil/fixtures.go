package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func PtrUint(v uint) *uint { return &v }

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Category {
	tb.Helper()
	c := &types.Category{Name: name, Tags: datatypes.JSONSlice[string]{}}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

// SeedCourse inserts a published, platform-owned course. Callers tweak the
// returned row through mutate before it is written.
func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, mutate ...func(*types.Course)) *types.Course {
	tb.Helper()
	c := &types.Course{
		Title:            title,
		Description:      title + " description",
		OwnedByPlatform:  true,
		Status:           types.CourseStatusPublished,
		Currency:         types.DefaultCurrency,
		Difficulty:       types.DifficultyBeginner,
		Tags:             datatypes.JSONSlice[string]{},
		Prerequisites:    datatypes.JSONSlice[string]{},
		LearningOutcomes: datatypes.JSONSlice[string]{},
	}
	for _, m := range mutate {
		m(c)
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedStudent(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.Student {
	tb.Helper()
	s := &types.Student{Email: email, Name: "Student " + email}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return s
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID, studentID uint, createdAt time.Time) *types.CourseEnrollment {
	tb.Helper()
	e := &types.CourseEnrollment{CourseID: courseID, StudentID: studentID, CreatedAt: createdAt}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.User {
	tb.Helper()
	u := &types.User{Name: name, Email: fmt.Sprintf("%s@example.com", name)}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPost(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, status types.PostStatus, authorID *uint, createdAt time.Time) *types.Post {
	tb.Helper()
	p := &types.Post{Title: title, Slug: title, Status: status, AuthorID: authorID, CreatedAt: createdAt}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed post: %v", err)
	}
	return p
}

func SeedSubscriber(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, status types.SubscriberStatus, createdAt time.Time) *types.Subscriber {
	tb.Helper()
	s := &types.Subscriber{Email: email, Status: status, CreatedAt: createdAt}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed subscriber: %v", err)
	}
	return s
}

func SeedCampaign(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Campaign {
	tb.Helper()
	c := &types.Campaign{Name: name, Status: "sent"}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed campaign: %v", err)
	}
	return c
}
