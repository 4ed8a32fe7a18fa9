package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http/response"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/services"
)

const (
	maxCourseBodyBytes = 10 << 20
	imageFormField     = "image"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

// GET /api/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context(), nil, services.CourseListQuery{
		Status:     c.Query("status"),
		CategoryID: c.Query("categoryId"),
		Featured:   c.Query("featured"),
		Search:     c.Query("search"),
	})
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, courses)
}

// GET /api/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	course, err := h.courseService.Get(c.Request.Context(), nil, courseID)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, course)
}

// POST /api/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	in, cleanup, err := h.readCourseInput(c)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	defer cleanup()

	course, err := h.courseService.Create(c.Request.Context(), nil, in)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondCreated(c, course)
}

// PATCH /api/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	in, cleanup, err := h.readCourseInput(c)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	defer cleanup()

	course, err := h.courseService.Update(c.Request.Context(), nil, courseID, in)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, course)
}

// DELETE /api/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if err := h.courseService.Delete(c.Request.Context(), nil, courseID); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Course deleted successfully"})
}

// readCourseInput accepts a JSON body or a multipart form with an optional
// image part.
func (h *CourseHandler) readCourseInput(c *gin.Context) (services.CourseInput, func(), error) {
	noop := func() {}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCourseBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	switch {
	case mediaType == "multipart/form-data":
		form, err := c.MultipartForm()
		if err != nil {
			return services.CourseInput{}, noop, apierr.Validation("body", "invalid multipart form")
		}
		in := services.CourseInputFromForm(form.Value)
		files := form.File[imageFormField]
		if len(files) == 0 {
			return in, func() { _ = form.RemoveAll() }, nil
		}
		f, err := files[0].Open()
		if err != nil {
			_ = form.RemoveAll()
			return services.CourseInput{}, noop, apierr.Validation(imageFormField, "unreadable image upload")
		}
		in.Image = &services.ImageUpload{Name: files[0].Filename, Reader: f}
		return in, func() {
			_ = f.Close()
			_ = form.RemoveAll()
		}, nil
	case mediaType == "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return services.CourseInput{}, noop, apierr.Validation("body", "invalid form body")
		}
		return services.CourseInputFromForm(c.Request.PostForm), noop, nil
	default:
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return services.CourseInput{}, noop, apierr.Validation("body", "request body too large")
			}
			return services.CourseInput{}, noop, apierr.Validation("body", "unreadable request body")
		}
		if mediaType != "" && !strings.HasSuffix(mediaType, "json") {
			return services.CourseInput{}, noop, apierr.Validation("body", "unsupported content type %s", mediaType)
		}
		in, err := services.CourseInputFromJSON(body)
		return in, noop, err
	}
}
