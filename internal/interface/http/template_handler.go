package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/data-labeling-backend/internal/application"
	"github.com/oksasatya/data-labeling-backend/pkg/response"
)

type TemplateHandler struct {
	Svc    *application.TemplateService
	Logger *logrus.Logger
}

func NewTemplateHandler(svc *application.TemplateService, logger *logrus.Logger) *TemplateHandler {
	return &TemplateHandler{Svc: svc, Logger: logger}
}

func (h *TemplateHandler) GetByID(c *gin.Context) {
	res, err := h.Svc.GetTemplateByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "template", nil)
}

func (h *TemplateHandler) List(c *gin.Context) {
	res, err := h.Svc.GetAllTemplates(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "templates", map[string]any{"count": len(res)})
}
