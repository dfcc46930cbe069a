package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/data-labeling-backend/pkg/response"
)

// Pinger is satisfied by *pgxpool.Pool and by anything else worth probing.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthModule struct {
	DB Pinger
}

func NewHealthModule(db Pinger) *HealthModule { return &HealthModule{DB: db} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.health)
}

func (m *HealthModule) health(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if m.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := m.DB.Ping(ctx); err != nil {
			response.Error[any](c, http.StatusServiceUnavailable, "database unavailable", nil)
			return
		}
		status["database"] = "ok"
	}
	response.Success[any](c, http.StatusOK, status, "healthy", nil)
}
