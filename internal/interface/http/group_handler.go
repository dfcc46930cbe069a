package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/data-labeling-backend/internal/application"
	"github.com/oksasatya/data-labeling-backend/pkg/response"
)

type GroupHandler struct {
	Svc    *application.GroupService
	Logger *logrus.Logger
}

func NewGroupHandler(svc *application.GroupService, logger *logrus.Logger) *GroupHandler {
	return &GroupHandler{Svc: svc, Logger: logger}
}

type createGroupRequest struct {
	GroupName        string `json:"groupName" binding:"required,notblank"`
	GroupDescription string `json:"groupDescription"`
}

type updateGroupRequest struct {
	NewGroupName        *string `json:"newGroupName"`
	NewGroupDescription *string `json:"newGroupDescription"`
}

type addReviewerRequest struct {
	UserID string `json:"userId" binding:"required,entityid"`
}

type addSampleRequest struct {
	SampleID string `json:"sampleId" binding:"required,notblank"`
}

func (h *GroupHandler) Create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Svc.CreateGroup(c.Request.Context(), application.CreateGroupInput{
		Name:        req.GroupName,
		Description: req.GroupDescription,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "group created", nil)
}

func (h *GroupHandler) GetByID(c *gin.Context) {
	res, err := h.Svc.GetGroupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "group", nil)
}

func (h *GroupHandler) List(c *gin.Context) {
	res, err := h.Svc.GetAllGroups(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "groups", map[string]any{"count": len(res)})
}

func (h *GroupHandler) Update(c *gin.Context) {
	var req updateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Svc.UpdateGroup(c.Request.Context(), c.Param("id"), application.UpdateGroupInput{
		NewName:        req.NewGroupName,
		NewDescription: req.NewGroupDescription,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "group updated", nil)
}

func (h *GroupHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.DeleteGroup(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"id": id, "deleted": true}, "group deleted", nil)
}

func (h *GroupHandler) AddReviewer(c *gin.Context) {
	var req addReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Svc.AddReviewer(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "reviewer added", nil)
}

func (h *GroupHandler) RemoveReviewer(c *gin.Context) {
	res, err := h.Svc.RemoveReviewer(c.Request.Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "reviewer removed", nil)
}

func (h *GroupHandler) AddSample(c *gin.Context) {
	var req addSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Svc.AddSample(c.Request.Context(), c.Param("id"), req.SampleID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "sample added", nil)
}

func (h *GroupHandler) RemoveSample(c *gin.Context) {
	res, err := h.Svc.RemoveSample(c.Request.Context(), c.Param("id"), c.Param("sampleId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "sample removed", nil)
}
