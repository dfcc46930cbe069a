package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/data-labeling-backend/internal/interface/http"
)

// TemplateModule is read-only; templates are loaded by cmd/seed.
type TemplateModule struct {
	Handler *handlers.TemplateHandler
}

func NewTemplateModule(h *handlers.TemplateHandler) *TemplateModule {
	return &TemplateModule{Handler: h}
}

func (m *TemplateModule) Register(rg *gin.RouterGroup) {
	rg.GET("/templates", m.Handler.List)
	rg.GET("/templates/:id", m.Handler.GetByID)
}
