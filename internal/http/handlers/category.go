package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http/response"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/services"
)

type CategoryHandler struct {
	log             *logger.Logger
	categoryService services.CategoryService
}

func NewCategoryHandler(log *logger.Logger, categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		log:             log.With("handler", "CategoryHandler"),
		categoryService: categoryService,
	}
}

// GET /api/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context(), nil)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, categories)
}

// GET /api/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := pathID(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	category, err := h.categoryService.Get(c.Request.Context(), nil, categoryID)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, category)
}
