package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	repo "github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		status   int
		contains string
		logged   bool
	}{
		{"not found", fmt.Errorf("label %w", repo.ErrNotFound), http.StatusNotFound, "label not found", false},
		{"conflict", fmt.Errorf("label name %w", repo.ErrConflict), http.StatusConflict, "label name already exists", false},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := logrus.New()
			logger.SetOutput(&logs)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(c, logger, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
			assert.NotContains(t, w.Body.String(), "connection refused")
			assert.Equal(t, tt.logged, logs.Len() > 0)
		})
	}
}
