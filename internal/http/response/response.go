package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

const internalMessage = "internal error"

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError classifies err and writes the envelope. Internal errors are
// logged and answered with a generic message.
func RespondAPIError(c *gin.Context, log *logger.Logger, err error) {
	ae := apierr.From(err)
	if ae == nil {
		ae = apierr.Internal(errors.New(internalMessage))
	}
	if ae.Status >= http.StatusInternalServerError {
		if log != nil {
			log.Error("Request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"error", err,
			)
		}
		c.AbortWithStatusJSON(ae.Status, ErrorEnvelope{
			Error: APIError{Message: internalMessage, Code: ae.Code},
		})
		return
	}
	c.AbortWithStatusJSON(ae.Status, ErrorEnvelope{
		Error: APIError{Message: ae.Error(), Code: ae.Code, Field: ae.Field},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
