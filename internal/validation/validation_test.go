package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/fellows-tracker/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renameRequest struct {
	ID   int64  `param:"id" json:"-" validate:"required"`
	Name string `json:"fellowName" validate:"required"`
}

func (r *renameRequest) Validate() error {
	return Struct(r)
}

type customRequest struct{}

func (customRequest) Validate() error {
	return CustomValidationErrors{{Field: "fellowId", Message: "must reference a fellow"}}
}

func newContext(method, body string, id string) echo.Context {
	req := httptest.NewRequest(method, "/api/fellows/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/fellows/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func requireBadRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate(t *testing.T) {
	t.Run("binds path and body", func(t *testing.T) {
		req := &renameRequest{}
		err := BindAndValidate(newContext(http.MethodPatch, `{"fellowName":"Maya"}`, "3"), req)
		require.NoError(t, err)
		assert.Equal(t, int64(3), req.ID)
		assert.Equal(t, "Maya", req.Name)
	})

	t.Run("body cannot override the path id", func(t *testing.T) {
		req := &renameRequest{}
		err := BindAndValidate(newContext(http.MethodPatch, `{"id":9,"fellowName":"Maya"}`, "3"), req)
		require.NoError(t, err)
		assert.Equal(t, int64(3), req.ID)
	})

	t.Run("missing field is reported by json name", func(t *testing.T) {
		err := BindAndValidate(newContext(http.MethodPatch, `{}`, "3"), &renameRequest{})
		httpErr := requireBadRequest(t, err)
		assert.Equal(t, "Validation failed", httpErr.Message)
		assert.Equal(t, []errs.FieldError{{Field: "fellowName", Error: "is required"}}, httpErr.Errors)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		err := BindAndValidate(newContext(http.MethodPatch, `{"fellowName":"Maya"}`, "abc"), &renameRequest{})
		httpErr := requireBadRequest(t, err)
		assert.Empty(t, httpErr.Errors)
		assert.NotEmpty(t, httpErr.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		err := BindAndValidate(newContext(http.MethodPatch, `{"fellowName":`, "3"), &renameRequest{})
		requireBadRequest(t, err)
	})
}

func TestExtractValidationErrorCustom(t *testing.T) {
	msg, fieldErrors := validateStruct(customRequest{})
	assert.Equal(t, "Validation failed", msg)
	assert.Equal(t, []errs.FieldError{{Field: "fellowId", Error: "must reference a fellow"}}, fieldErrors)
}

func TestExtractValidationErrorPlainError(t *testing.T) {
	_, fieldErrors := extractValidationError(errors.New("boom"))
	assert.Equal(t, []errs.FieldError{{Field: "request", Error: "boom"}}, fieldErrors)
}
