package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http/response"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/services"
)

type EnrollmentHandler struct {
	log               *logger.Logger
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(log *logger.Logger, enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:               log.With("handler", "EnrollmentHandler"),
		enrollmentService: enrollmentService,
	}
}

// enrollRequest tolerates courseId as a number or a numeric string.
type enrollRequest struct {
	CourseID   flexUint `json:"courseId"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Interest   *string  `json:"interest"`
	Motivation *string  `json:"motivation"`
}

// POST /api/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, h.log, apierr.Validation("body", "invalid enrollment request"))
		return
	}
	res, err := h.enrollmentService.Enroll(c.Request.Context(), nil, services.EnrollInput{
		CourseID:   uint(req.CourseID),
		Name:       req.Name,
		Email:      req.Email,
		Interest:   req.Interest,
		Motivation: req.Motivation,
	})
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

// GET /api/courses/:id/students
func (h *EnrollmentHandler) ListCourseStudents(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	students, err := h.enrollmentService.ListStudentsForCourse(c.Request.Context(), nil, courseID)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, students)
}

// GET /api/students/:id/courses
func (h *EnrollmentHandler) ListStudentCourses(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	courses, err := h.enrollmentService.ListCoursesForStudent(c.Request.Context(), nil, studentID)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, courses)
}

// GET /api/students/lookup?email=
func (h *EnrollmentHandler) LookupStudent(c *gin.Context) {
	student, err := h.enrollmentService.FindStudentByEmail(c.Request.Context(), nil, c.Query("email"))
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, student)
}
