package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/data-labeling-backend/config"
	"github.com/oksasatya/data-labeling-backend/internal/container"
	"github.com/oksasatya/data-labeling-backend/internal/infrastructure/memory"
	"github.com/oksasatya/data-labeling-backend/internal/seed"
	"github.com/oksasatya/data-labeling-backend/pkg/helpers"
)

func TestInitModules_MemoryStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("STORE_DRIVER", config.StoreDriverMemory)
	cfg := config.Load()
	cfg.DebugMetricsEnabled = true

	mem := memory.NewStore()
	mem.SeedTemplates(seed.DefaultTemplates()...)
	container.SetConfig(cfg)
	container.SetLogger(helpers.NewDiscardLogger())
	container.SetMemoryStore(mem)
	t.Cleanup(func() { container.SetMemoryStore(nil) })

	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg)
	reg.RegisterAll()

	for _, path := range []string{"/api/health", "/api/debug/vars", "/api/templates", "/api/groups", "/api/labels", "/api/users"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/groups/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistry_AppliesMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reg := NewRegistry(r)
	reg.Use(func(c *gin.Context) {
		c.Header("X-Test", "1")
		c.Next()
	})
	reg.Add(moduleFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	}))
	reg.RegisterAll()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Test"))
}

type moduleFunc func(rg *gin.RouterGroup)

func (f moduleFunc) Register(rg *gin.RouterGroup) { f(rg) }
