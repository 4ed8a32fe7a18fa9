package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	maxInboundIDLen = 128
)

// AttachTraceContext echoes (or mints) a request id and trace id on every
// response and stores both on the request context for the access log.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		td := &ctxutil.TraceData{
			RequestID: inboundID(c.GetHeader(headerRequestID)),
			TraceID:   inboundID(c.GetHeader(headerTraceID)),
		}
		if td.RequestID == "" {
			td.RequestID = uuid.NewString()
		}
		if td.TraceID == "" {
			if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
				td.TraceID = sc.TraceID().String()
			} else {
				td.TraceID = uuid.NewString()
			}
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), td))
		h := c.Writer.Header()
		h.Set(headerRequestID, td.RequestID)
		h.Set(headerTraceID, td.TraceID)
		c.Next()
	}
}

// inboundID accepts a client supplied id only when it is short printable ASCII.
func inboundID(raw string) string {
	id := strings.TrimSpace(raw)
	if len(id) > maxInboundIDLen {
		return ""
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return ""
		}
	}
	return id
}
