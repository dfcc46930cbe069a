package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/data-labeling-backend/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	var seen string
	r.GET("/", func(c *gin.Context) { seen = c.GetString("request_id") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {})

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	w := serve(r, req)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = serve(r, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		headers    map[string]string
		want       string
	}{
		{"cloudflare header", true, map[string]string{"CF-Connecting-IP": "203.0.113.7"}, "203.0.113.7"},
		{"left-most forwarded", true, map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "198.51.100.1"},
		{"garbage falls back", true, map[string]string{"X-Forwarded-For": "nope"}, "192.0.2.1"},
		{"untrusted ignores headers", false, map[string]string{"CF-Connecting-IP": "203.0.113.7"}, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RealIP(tt.trustProxy))
			var got string
			r.GET("/", func(c *gin.Context) { got = c.GetString("real_ip") })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:4321"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			serve(r, req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRateLimit_NilClientIsNoop(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(nil, 1, time.Minute, KeyByIP(), nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestKeyFuncs(t *testing.T) {
	r := gin.New()
	r.Use(RealIP(false))
	var byIP, byPath string
	r.GET("/users/:id", func(c *gin.Context) {
		byIP = KeyByIP()(c)
		byPath = KeyByIPAndPath()(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	req.RemoteAddr = "192.0.2.9:1000"
	serve(r, req)

	assert.Equal(t, "rl:ip:192.0.2.9", byIP)
	assert.Equal(t, "rl:path:/users/:id:ip:192.0.2.9", byPath)
}

func TestAllowFuncs(t *testing.T) {
	r := gin.New()
	r.Use(RealIP(false))
	var private, reads bool
	r.Any("/", func(c *gin.Context) {
		private = AllowPrivateIP()(c)
		reads = AnyOf(nil, AllowMethods(http.MethodGet))(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.1.2.3:80"
	serve(r, req)
	assert.True(t, private)
	assert.False(t, reads)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "8.8.8.8:80"
	serve(r, req)
	assert.False(t, private)
	assert.True(t, reads)
}

func TestAccessLog_DoesNotBreakChain(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLog(helpers.NewDiscardLogger()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
