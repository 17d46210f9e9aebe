package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/fellows-tracker/internal/errs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorForeignKeyNamesReferencedFellow(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           pgerrcode.ForeignKeyViolation,
		Message:        `insert or update on table "posts" violates foreign key constraint "posts_fellow_id_fkey"`,
		TableName:      "posts",
		ConstraintName: "posts_fellow_id_fkey",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("create post: %w", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "FELLOW_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Fellow does not exist", httpErr.Message)
}

func TestHandleErrorNotNullProducesFieldError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		TableName:  "posts",
		ColumnName: "fellow_id",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "FELLOW_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Fellow Id is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "fellow_id", httpErr.Errors[0].Field)
}

func TestHandleErrorUniqueViolationUsesConstraintColumn(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		TableName:      "fellows",
		ConstraintName: "fellows_name_key",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, "FELLOW_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Fellow with this Name already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleErrorFallbacks(t *testing.T) {
	notFound := asHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, notFound.Status)

	internal := asHTTPError(t, HandleError(errors.New("connection reset by peer")))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), internal.Message)

	unknownPg := asHTTPError(t, HandleError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}))
	assert.Equal(t, http.StatusInternalServerError, unknownPg.Status)
}

func TestHandleErrorPassesHTTPErrorsThrough(t *testing.T) {
	original := errs.NewNotFoundError("No post with the id 3", false, nil).AsText()

	assert.Same(t, original, HandleError(original))
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, ForeignKeyViolation, MapCode(pgerrcode.ForeignKeyViolation))
	assert.Equal(t, Other, MapCode(pgerrcode.ConnectionFailure))
	assert.Equal(t, Other, MapCode(pgerrcode.SerializationFailure))

	converted := ConvertPgError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, Message: "fk"})
	assert.Equal(t, ForeignKeyViolation, converted.Code)
	assert.Equal(t, "fk (SQLSTATE 23503)", converted.Error())
}
