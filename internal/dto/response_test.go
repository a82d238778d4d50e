package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	res "terminal-terrace/exercise-service/pkg/response"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) res.Response {
	t.Helper()
	var body res.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorResponse_UsesBusinessStatus(t *testing.T) {
	c, w := newContext()

	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.NotFound),
		res.WithErrorMessage("exercise not found"),
	))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, res.NotFound, body.Code)
	assert.Equal(t, "exercise not found", body.Message)
}

func TestErrorResponse_ForeignErrorIsInternal(t *testing.T) {
	c, w := newContext()

	ErrorResponse(c, errors.New("driver: bad connection"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", decode(t, w).Message)
}

func TestCreatedAndNoContent(t *testing.T) {
	c, w := newContext()
	CreatedResponse(c, gin.H{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, res.Success, decode(t, w).Code)

	c, w = newContext()
	NoContentResponse(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

type sampleRequest struct {
	Title    string `validate:"required"`
	Password string `validate:"min=6"`
}

func TestValidationErrorResponse(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		req     sampleRequest
		message string
	}{
		{
			name:    "required field",
			req:     sampleRequest{Password: "secret123"},
			message: "field 'title' is required",
		},
		{
			name:    "min length",
			req:     sampleRequest{Title: "Verbs", Password: "pw"},
			message: "field 'password' must be at least 6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()

			ValidationErrorResponse(c, v.Struct(tt.req))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decode(t, w)
			assert.Equal(t, res.ParseError, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestValidationErrorResponse_PassesBusinessErrorThrough(t *testing.T) {
	c, w := newContext()

	ValidationErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.InvalidParameter),
		res.WithErrorMessage("unsupported exercise type"),
	))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, res.InvalidParameter, body.Code)
	assert.Equal(t, "unsupported exercise type", body.Message)
}

func TestValidationErrorResponse_SyntaxError(t *testing.T) {
	c, w := newContext()

	var target map[string]any
	ValidationErrorResponse(c, json.Unmarshal([]byte("{"), &target))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Message, "invalid request body")
}
