package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/timmy/carmate/internal/config"
	"github.com/timmy/carmate/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTenant(t *testing.T) {
	r := gin.New()
	r.Use(Tenant())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%d", CompanyID(c))
	})

	tests := []struct {
		header string
		status int
		body   string
	}{
		{"7", http.StatusOK, "7"},
		{" 12 ", http.StatusOK, "12"},
		{"", http.StatusUnauthorized, ""},
		{"0", http.StatusUnauthorized, ""},
		{"abc", http.StatusUnauthorized, ""},
		{"-1", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set(HeaderCompanyID, tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tt.status, w.Code, tt.header)
		if tt.status == http.StatusOK {
			assert.Equal(t, tt.body, w.Body.String())
		} else {
			assert.Contains(t, w.Body.String(), "로그인이 필요합니다")
		}
	}
}

func TestLoggerMiddlewareSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware(logger.Discard()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.GetRequestID(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	assert.Equal(t, w.Header().Get(HeaderRequestID), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Body.String())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowedOrigins: []string{"https://app.carmate.kr"}}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.carmate.kr")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.carmate.kr", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestIsOriginAllowed(t *testing.T) {
	assert.True(t, IsOriginAllowed("x", config.CORSConfig{AllowAllOrigins: true}))
	assert.True(t, IsOriginAllowed("HTTPS://A.KR", config.CORSConfig{AllowedOrigins: []string{"https://a.kr"}}))
	assert.False(t, IsOriginAllowed("https://b.kr", config.CORSConfig{AllowedOrigins: []string{"https://a.kr"}}))
}
