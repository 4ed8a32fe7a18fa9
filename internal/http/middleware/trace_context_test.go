package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/ctxutil"
)

func TestAttachTraceContextEchoesInboundIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())

	var seen *ctxutil.TraceData
	r.GET("/x", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, "req-1")
	req.Header.Set(headerTraceID, "trace-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, "req-1", rec.Header().Get(headerRequestID))
	require.Equal(t, "trace-1", rec.Header().Get(headerTraceID))
	require.NotNil(t, seen)
	require.Equal(t, "req-1", seen.RequestID)
}

func TestAttachTraceContextReplacesUnusableIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, strings.Repeat("a", maxInboundIDLen+1))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	got := rec.Header().Get(headerRequestID)
	require.Len(t, got, 36)
	require.NotEmpty(t, rec.Header().Get(headerTraceID))
}

func TestInboundID(t *testing.T) {
	require.Equal(t, "abc-123", inboundID("  abc-123 "))
	require.Equal(t, "", inboundID("has space"))
	require.Equal(t, "", inboundID("tab\tid"))
}
