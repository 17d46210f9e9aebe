package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE fellows`).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := WithTx(context.Background(), mock, func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(), `UPDATE fellows SET name = 'x'`)
		return err
	})
	require.NoError(t, err)
}

func TestWithTxRollsBackAndReturnsCallbackError(t *testing.T) {
	mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("stop")
	err := WithTx(context.Background(), mock, func(pgx.Tx) error { return sentinel })

	assert.Same(t, sentinel, err)
}

func TestWithTxReportsBeginFailure(t *testing.T) {
	mock := newMockStore(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := WithTx(context.Background(), mock, func(pgx.Tx) error {
		called = true
		return nil
	})

	assert.ErrorContains(t, err, "begin transaction")
	assert.False(t, called)
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = WithTx(context.Background(), mock, func(pgx.Tx) error { panic("boom") })
	})
}
