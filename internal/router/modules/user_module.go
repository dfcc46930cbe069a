package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/data-labeling-backend/internal/interface/http"
	"github.com/oksasatya/data-labeling-backend/internal/interface/middleware"
)

// UserModule wires user CRUD and search under /users.
// Sign-up and search get their own tighter per-IP limits when Redis is set.
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	g := rg.Group("/users")
	g.POST("", createLimiter, m.Handler.Create)
	g.GET("", m.Handler.List)
	g.GET("/search", searchLimiter, m.Handler.Search)
	g.GET("/:id", m.Handler.GetByID)
	g.PUT("/:id", m.Handler.Update)
	g.DELETE("/:id", m.Handler.Delete)
}
