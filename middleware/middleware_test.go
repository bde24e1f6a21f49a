package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestIPRateLimiter_SeparateBuckets(t *testing.T) {
	rl := middleware.NewIPRateLimiter(rate.Every(time.Hour), 1)

	assert.True(t, rl.GetLimiter("10.0.0.1").Allow())
	assert.False(t, rl.GetLimiter("10.0.0.1").Allow())
	assert.True(t, rl.GetLimiter("10.0.0.2").Allow())
}
