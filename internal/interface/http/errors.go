package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/data-labeling-backend/internal/domain/repository"
	"github.com/oksasatya/data-labeling-backend/pkg/helpers"
	"github.com/oksasatya/data-labeling-backend/pkg/response"
	"github.com/oksasatya/data-labeling-backend/pkg/validation"
)

// respondError maps service errors to HTTP. Not-found becomes 404 and a
// uniqueness clash 409, both with the error text; anything else is logged
// and hidden behind a 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		return
	case errors.Is(err, repo.ErrConflict):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
		return
	}
	_ = c.Error(err)
	if logger != nil {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		})
	}
	response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
}

func respondBindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
