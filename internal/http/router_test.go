package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos/testutil"
	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	httpH "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http/handlers"
	httpMW "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http/middleware"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/observability"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/services"
)

type testAPI struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
	admin  string
	editor string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics()

	courseRepo := repos.NewCourseRepo(db, log)
	categoryRepo := repos.NewCategoryRepo(db, log)
	studentRepo := repos.NewStudentRepo(db, log)
	enrollmentRepo := repos.NewCourseEnrollmentRepo(db, log)
	auth := services.NewAuthService(log, "test-secret")

	engine := NewRouter(RouterConfig{
		Log:               log,
		Metrics:           metrics,
		AuthMiddleware:    httpMW.NewAuthMiddleware(log, auth),
		CourseHandler:     httpH.NewCourseHandler(log, services.NewCourseService(db, log, courseRepo, categoryRepo, nil)),
		CategoryHandler:   httpH.NewCategoryHandler(log, services.NewCategoryService(db, log, categoryRepo)),
		EnrollmentHandler: httpH.NewEnrollmentHandler(log, services.NewEnrollmentService(db, log, metrics, courseRepo, studentRepo, enrollmentRepo)),
		AnalyticsHandler: httpH.NewAnalyticsHandler(log, services.NewAnalyticsService(db, log, metrics, services.AnalyticsDeps{
			Courses:     courseRepo,
			Students:    studentRepo,
			Enrollments: enrollmentRepo,
			Posts:       repos.NewPostRepo(db, log),
			Subscribers: repos.NewSubscriberRepo(db, log),
			Campaigns:   repos.NewCampaignRepo(db, log),
		})),
		HealthHandler: httpH.NewHealthHandler(db),
	})

	admin, err := auth.IssueToken("admin-1", services.RoleAdmin, time.Hour)
	require.NoError(t, err)
	editor, err := auth.IssueToken("editor-1", "editor", time.Hour)
	require.NoError(t, err)
	return &testAPI{t: t, db: db, engine: engine, admin: admin, editor: editor}
}

func (a *testAPI) do(method, path, token, contentType string, body []byte) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) json(method, path, token, body string) *httptest.ResponseRecorder {
	return a.do(method, path, token, "application/json", []byte(body))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), "body=%s", rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &env)
	return env.Error.Code
}

func TestCourseLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(stdhttp.MethodPost, "/api/courses", "", `{"title":"Go"}`)
	require.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
	rec = api.json(stdhttp.MethodPost, "/api/courses", api.editor, `{"title":"Go"}`)
	require.Equal(t, stdhttp.StatusForbidden, rec.Code)

	rec = api.json(stdhttp.MethodPost, "/api/courses", api.admin, `{"title":"Go","ownedByPlatform":true,"price":0,"tags":"not json"}`)
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]any
	decode(t, rec, &created)
	require.Equal(t, true, created["ownedByPlatform"])
	require.Equal(t, false, created["isExternal"])
	require.Equal(t, "USD", created["currency"])
	require.Equal(t, []any{}, created["tags"])
	require.EqualValues(t, 0, created["enrollmentCount"])
	id := uint(created["id"].(float64))

	rec = api.json(stdhttp.MethodPatch, fmt.Sprintf("/api/courses/%d", id), api.admin, `{"ownedByPlatform":false}`)
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	var updated map[string]any
	decode(t, rec, &updated)
	require.Equal(t, false, updated["ownedByPlatform"])
	require.Equal(t, true, updated["isExternal"])

	rec = api.json(stdhttp.MethodGet, fmt.Sprintf("/api/courses/%d", id), "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)

	rec = api.json(stdhttp.MethodDelete, fmt.Sprintf("/api/courses/%d", id), api.admin, "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "message")

	rec = api.json(stdhttp.MethodGet, fmt.Sprintf("/api/courses/%d", id), "", "")
	require.Equal(t, stdhttp.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", errorCode(t, rec))

	rec = api.json(stdhttp.MethodGet, "/api/courses/abc", "", "")
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", errorCode(t, rec))
}

func TestCreateCourseMultipart(t *testing.T) {
	api := newTestAPI(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", "Form Course"))
	require.NoError(t, w.WriteField("featured", "on"))
	require.NoError(t, w.WriteField("tags", `["a","b"]`))
	require.NoError(t, w.Close())

	rec := api.do(stdhttp.MethodPost, "/api/courses", api.admin, w.FormDataContentType(), body.Bytes())
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	var created types.Course
	decode(t, rec, &created)
	require.Equal(t, "Form Course", created.Title)
	require.True(t, created.Featured)
	require.Equal(t, []string{"a", "b"}, []string(created.Tags))

	// No image store is configured here, so an image part is refused.
	body.Reset()
	w = multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", "With Image"))
	part, err := w.CreateFormFile("image", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rec = api.do(stdhttp.MethodPost, "/api/courses", api.admin, w.FormDataContentType(), body.Bytes())
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestListCoursesQuery(t *testing.T) {
	api := newTestAPI(t)
	ctx := t.Context()
	testutil.SeedCourse(t, ctx, api.db, "React Basics")
	testutil.SeedCourse(t, ctx, api.db, "Vue Basics", func(c *types.Course) { c.Status = types.CourseStatusDraft })

	rec := api.json(stdhttp.MethodGet, "/api/courses?status=published&search=react", "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var courses []types.Course
	decode(t, rec, &courses)
	require.Len(t, courses, 1)
	require.Equal(t, "React Basics", courses[0].Title)

	rec = api.json(stdhttp.MethodGet, "/api/courses?status=nope", "", "")
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestEnrollmentFlow(t *testing.T) {
	api := newTestAPI(t)
	course := testutil.SeedCourse(t, t.Context(), api.db, "C1")

	body := fmt.Sprintf(`{"courseId":"%d","name":"Alice","email":"Alice@Example.com"}`, course.ID)
	rec := api.json(stdhttp.MethodPost, "/api/enrollments", "", body)
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	var first services.EnrollResult
	decode(t, rec, &first)
	require.True(t, first.Success)

	rec = api.json(stdhttp.MethodPost, "/api/enrollments", "", body)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var second services.EnrollResult
	decode(t, rec, &second)
	require.Equal(t, first.Enrollment.ID, second.Enrollment.ID)

	rec = api.json(stdhttp.MethodPost, "/api/enrollments", "", fmt.Sprintf(`{"courseId":%d,"name":"Bob","email":"bob@example.com"}`, course.ID))
	require.Equal(t, stdhttp.StatusCreated, rec.Code)

	rec = api.json(stdhttp.MethodPost, "/api/enrollments", "", `{"courseId":1,"name":"X","email":"nope"}`)
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", errorCode(t, rec))

	rec = api.json(stdhttp.MethodGet, fmt.Sprintf("/api/courses/%d/students", course.ID), "", "")
	require.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
	rec = api.json(stdhttp.MethodGet, fmt.Sprintf("/api/courses/%d/students", course.ID), api.admin, "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var students []types.Student
	decode(t, rec, &students)
	require.Len(t, students, 2)
	require.Equal(t, "alice@example.com", students[0].Email)

	rec = api.json(stdhttp.MethodGet, "/api/students/lookup?email=ALICE@example.com", "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var alice types.Student
	decode(t, rec, &alice)

	rec = api.json(stdhttp.MethodGet, fmt.Sprintf("/api/students/%d/courses", alice.ID), api.admin, "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var courses []types.Course
	decode(t, rec, &courses)
	require.Len(t, courses, 1)
	require.Equal(t, course.ID, courses[0].ID)

	rec = api.json(stdhttp.MethodGet, "/api/students/lookup?email=ghost@example.com", "", "")
	require.Equal(t, stdhttp.StatusNotFound, rec.Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	api := newTestAPI(t)
	testutil.SeedCourse(t, t.Context(), api.db, "C1")

	rec := api.json(stdhttp.MethodGet, "/api/analytics/stats", "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var stats services.Stats
	decode(t, rec, &stats)
	require.Equal(t, int64(1), stats.Courses)

	rec = api.json(stdhttp.MethodGet, "/api/analytics/summary?period=7d", "", "")
	require.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
	rec = api.json(stdhttp.MethodGet, "/api/analytics/summary?period=7d", api.admin, "")
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	var summary services.Summary
	decode(t, rec, &summary)
	require.Equal(t, "7d", summary.Period.Label)
	require.Equal(t, int64(1), summary.Totals.Courses)

	rec = api.json(stdhttp.MethodGet, "/api/analytics/summary?period=2w", api.admin, "")
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)

	sqlDB, err := api.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	rec = api.json(stdhttp.MethodGet, "/api/analytics/stats", "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	require.JSONEq(t, `{"courses":0,"students":0,"subscribers":0,"enrollments":0}`, rec.Body.String())

	rec = api.json(stdhttp.MethodGet, "/api/analytics/summary", api.admin, "")
	require.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), `"internal error"`))

	rec = api.json(stdhttp.MethodGet, "/healthcheck", "", "")
	require.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.json(stdhttp.MethodGet, "/api/courses", "", "")

	rec := api.json(stdhttp.MethodGet, "/metrics", "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `smarthustle_api_requests_total{method="GET",route="/api/courses",status="200"} 1`)
}
