package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/data-labeling-backend/internal/interface/http"
)

type GroupModule struct {
	Handler *handlers.GroupHandler
}

func NewGroupModule(h *handlers.GroupHandler) *GroupModule {
	return &GroupModule{Handler: h}
}

func (m *GroupModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/groups")
	g.POST("", m.Handler.Create)
	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.GetByID)
	g.PUT("/:id", m.Handler.Update)
	g.DELETE("/:id", m.Handler.Delete)

	g.POST("/:id/reviewers", m.Handler.AddReviewer)
	g.DELETE("/:id/reviewers/:userId", m.Handler.RemoveReviewer)
	g.POST("/:id/samples", m.Handler.AddSample)
	g.DELETE("/:id/samples/:sampleId", m.Handler.RemoveSample)
}
