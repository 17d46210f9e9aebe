package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundErrorRendering(t *testing.T) {
	base := NewNotFoundError("No fellow with the id 7", false, nil)

	assert.Equal(t, "NOT_FOUND", base.Code)
	assert.Equal(t, http.StatusNotFound, base.Status)
	assert.Equal(t, BodyJSON, base.Body)

	text := base.AsText()
	assert.Equal(t, BodyText, text.Body)
	assert.Equal(t, BodyJSON, base.Body, "AsText must not mutate the receiver")

	bare := base.WithoutBody()
	assert.Equal(t, BodyNone, bare.Body)
	assert.Equal(t, base.Message, bare.Message)
}

func TestHTTPErrorIsMatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading fellow: %w", NewNotFoundError("missing", false, nil))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "missing", httpErr.Message)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
}

func TestBadRequestCustomCode(t *testing.T) {
	code := "FELLOW_NOT_FOUND"
	err := NewBadRequestError("The referenced Fellow does not exist", false, &code, nil)

	assert.Equal(t, code, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "BAD_REQUEST", NewBadRequestError("x", false, nil, nil).Code)
}

func TestWithMessageCopies(t *testing.T) {
	base := NewInternalServerError()
	changed := base.WithMessage("boom")

	assert.Equal(t, "boom", changed.Message)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), base.Message)
}
