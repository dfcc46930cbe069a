package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/data-labeling-backend/internal/application"
	"github.com/oksasatya/data-labeling-backend/pkg/response"
)

type LabelHandler struct {
	Svc    *application.LabelService
	Logger *logrus.Logger
}

func NewLabelHandler(svc *application.LabelService, logger *logrus.Logger) *LabelHandler {
	return &LabelHandler{Svc: svc, Logger: logger}
}

type createLabelsRequest struct {
	LabelNames []string `json:"labelNames" binding:"required,min=1,dive,notblank,labelname"`
}

// newLabelName only has to be present; a blank value is passed through.
type updateLabelRequest struct {
	NewLabelName *string `json:"newLabelName" binding:"required"`
}

func (h *LabelHandler) Create(c *gin.Context) {
	var req createLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Svc.CreateLabels(c.Request.Context(), req.LabelNames)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "labels created", map[string]any{
		"requested": len(req.LabelNames),
		"created":   len(res),
	})
}

func (h *LabelHandler) GetByID(c *gin.Context) {
	res, err := h.Svc.GetLabelByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "label", nil)
}

func (h *LabelHandler) List(c *gin.Context) {
	res, err := h.Svc.GetAllLabels(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "labels", map[string]any{"count": len(res)})
}

func (h *LabelHandler) Update(c *gin.Context) {
	var req updateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Svc.UpdateLabel(c.Request.Context(), c.Param("id"), *req.NewLabelName)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "label updated", nil)
}
