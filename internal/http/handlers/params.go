package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
)

func pathID(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apierr.Validation(name, "%s must be a positive integer", name)
	}
	return uint(id), nil
}
