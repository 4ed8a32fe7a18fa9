package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func preflight(r *gin.Engine, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/enrollments", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORS([]string{"https://cms.example.com"}))
	r.OPTIONS("/api/enrollments", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := preflight(r, "https://cms.example.com")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://cms.example.com" {
		t.Fatalf("unexpected allow-origin header: got=%q", got)
	}

	rec = preflight(r, "https://evil.example.com")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign origin: got=%d want=%d", rec.Code, http.StatusForbidden)
	}
}

func TestCORSFallsBackToLocalDevOrigins(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORS(nil))
	r.OPTIONS("/api/enrollments", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for _, origin := range DefaultAllowedOrigins {
		origin := origin
		t.Run(origin, func(t *testing.T) {
			rec := preflight(r, origin)
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
				t.Fatalf("unexpected allow-origin header: got=%q want=%q", got, origin)
			}
		})
	}
}
