package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/data-labeling-backend/internal/application"
	"github.com/oksasatya/data-labeling-backend/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Username  string  `json:"username" binding:"required,notblank"`
	Password  string  `json:"password" binding:"required"`
	AdminCode *string `json:"adminCode"`
}

type updateUserRequest struct {
	NewUsername *string `json:"newUsername"`
	NewPassword *string `json:"newPassword"`
}

type searchUsersQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size" binding:"omitempty,gte=1,lte=50"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Svc.CreateUser(c.Request.Context(), application.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		AdminCode: req.AdminCode,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "user created", nil)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	res, err := h.Svc.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "user", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	res, err := h.Svc.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "users", map[string]any{"count": len(res)})
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Svc.UpdateUser(c.Request.Context(), c.Param("id"), application.UpdateUserInput{
		NewUsername: req.NewUsername,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"id": id, "deleted": true}, "user deleted", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	var q searchUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Svc.SearchUsers(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "users", map[string]any{"count": len(res)})
}
