package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/data-labeling-backend/internal/interface/http"
)

type LabelModule struct {
	Handler *handlers.LabelHandler
}

func NewLabelModule(h *handlers.LabelHandler) *LabelModule {
	return &LabelModule{Handler: h}
}

func (m *LabelModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/labels")
	g.POST("", m.Handler.Create)
	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.GetByID)
	g.PUT("/:id", m.Handler.Update)
}
