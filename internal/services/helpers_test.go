package services

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos/testutil"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/observability"
)

type fakeImageStore struct {
	mu      sync.Mutex
	names   []string
	deleted []string
}

func (f *fakeImageStore) Store(ctx context.Context, name string, file io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
	return "courses/" + name, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeImageStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]any
	getErr  error
	sets    int
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string]any{}} }

func (f *fakeCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return false, f.getErr
	}
	v, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	if s, ok := v.(*Stats); ok {
		*(dst.(*Stats)) = *s
	}
	return true, nil
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := value.(*Stats); ok {
		cp := *s
		f.entries[key] = &cp
	}
	f.sets++
	return nil
}

type fixture struct {
	db          *gorm.DB
	metrics     *observability.Metrics
	images      *fakeImageStore
	courses     CourseService
	categories  CategoryService
	enrollments EnrollmentService
	analytics   AnalyticsService
}

func newFixture(t *testing.T, cache JSONCache) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics()
	images := &fakeImageStore{}

	courseRepo := repos.NewCourseRepo(db, log)
	categoryRepo := repos.NewCategoryRepo(db, log)
	studentRepo := repos.NewStudentRepo(db, log)
	enrollmentRepo := repos.NewCourseEnrollmentRepo(db, log)

	return &fixture{
		db:          db,
		metrics:     metrics,
		images:      images,
		courses:     NewCourseService(db, log, courseRepo, categoryRepo, images),
		categories:  NewCategoryService(db, log, categoryRepo),
		enrollments: NewEnrollmentService(db, log, metrics, courseRepo, studentRepo, enrollmentRepo),
		analytics: NewAnalyticsService(db, log, metrics, AnalyticsDeps{
			Courses:     courseRepo,
			Students:    studentRepo,
			Enrollments: enrollmentRepo,
			Posts:       repos.NewPostRepo(db, log),
			Subscribers: repos.NewSubscriberRepo(db, log),
			Campaigns:   repos.NewCampaignRepo(db, log),
			Cache:       cache,
			CacheTTL:    time.Minute,
		}),
	}
}

func imageUpload(name string) *ImageUpload {
	return &ImageUpload{Name: name, Reader: bytes.NewReader([]byte("png-bytes"))}
}

func strPtr(s string) *string { return &s }

func newCourseRepo(t *testing.T, db *gorm.DB) repos.CourseRepo {
	return repos.NewCourseRepo(db, testutil.Logger(t))
}

func newCategoryRepo(t *testing.T, db *gorm.DB) repos.CategoryRepo {
	return repos.NewCategoryRepo(db, testutil.Logger(t))
}

func testNow() time.Time { return time.Now().UTC() }
