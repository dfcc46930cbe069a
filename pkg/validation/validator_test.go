package validation

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type labelsRequest struct {
	LabelNames []string `json:"labelNames" validate:"required,min=1,dive,notblank,labelname"`
}

type reviewerRequest struct {
	UserID string `json:"userId" validate:"required,entityid"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestToDetails_UsesJSONFieldNames(t *testing.T) {
	err := newValidator(t).Struct(reviewerRequest{UserID: "not-a-uuid"})
	require.Error(t, err)

	assert.Equal(t, map[string]string{"userId": "must be a valid UUID"}, ToDetails(err))
}

func TestToDetails_NotBlankInsideSlice(t *testing.T) {
	err := newValidator(t).Struct(labelsRequest{LabelNames: []string{"cat", "   "}})
	require.Error(t, err)

	assert.Equal(t, map[string]string{"labelNames[1]": "must not be blank"}, ToDetails(err))
}

func TestToDetails_EmptySlice(t *testing.T) {
	err := newValidator(t).Struct(labelsRequest{LabelNames: []string{}})
	require.Error(t, err)

	assert.Equal(t, "must contain at least 1 items", ToDetails(err)["labelNames"])
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var dst map[string]any
	err := json.Unmarshal([]byte("{"), &dst)
	require.Error(t, err)

	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetails_Nil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestInit_RegistersOnGinEngine(t *testing.T) {
	require.NoError(t, Init())

	type groupRequest struct {
		GroupName string `json:"groupName" binding:"required,notblank"`
	}
	err := binding.Validator.ValidateStruct(groupRequest{GroupName: " \t "})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"groupName": "must not be blank"}, ToDetails(err))

	assert.NoError(t, binding.Validator.ValidateStruct(groupRequest{GroupName: "g"}))
}
