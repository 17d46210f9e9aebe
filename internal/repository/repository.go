// Package repository handles all interactions with the database.
//
// It contains the SQL statements and the methods that run them,
// keeping SQL out of the service layer. Every statement is static text
// with $n placeholders; values only travel as bind arguments.
//
// Errors leave this package wrapped with github.com/pkg/errors, so the
// stack of the failing call reaches the error log.
package repository

import (
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("record not found")

// notFound turns pgx's no-rows error into ErrNotFound and leaves every
// other error untouched.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// inSerialRange reports whether id fits the int4 serial keys. Postgres
// refuses to encode anything larger, and no row can carry such an id.
func inSerialRange(id int64) bool {
	return id >= math.MinInt32 && id <= math.MaxInt32
}
