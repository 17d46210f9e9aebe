package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/fellows-tracker/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	uniqueConstraintPattern     = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	foreignKeyConstraintPattern = regexp.MustCompile(`^[^_]+_(.+)_fkey$`)
)

// ConvertPgError converts a raw pgconn.PgError into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds a machine-readable <DOMAIN>_<ACTION> code,
// e.g. fellow + ForeignKeyViolation => FELLOW_NOT_FOUND.
func generateErrorCode(entity string, errType Code) string {
	if entity == "" {
		entity = "record"
	}
	domain := strings.ToUpper(strings.ReplaceAll(entity, " ", "_"))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// entityName infers the entity a failed statement was about.
//
// Foreign keys name the referenced entity through their column
// ("fellow_id" -> "fellow"). Postgres does not report the column for FK
// violations, so it is recovered from the default constraint name
// "<table>_<column>_fkey". Otherwise the table name is singularized.
func entityName(sqlErr *Error) string {
	column := sqlErr.ColumnName
	if column == "" && sqlErr.Code == ForeignKeyViolation {
		if m := foreignKeyConstraintPattern.FindStringSubmatch(sqlErr.ConstraintName); len(m) > 1 {
			column = m[1]
		}
	}

	if column != "" && strings.HasSuffix(strings.ToLower(column), "_id") {
		return strings.TrimSuffix(strings.ToLower(column), "_id")
	}

	if sqlErr.TableName != "" {
		return strings.TrimSuffix(sqlErr.TableName, "s")
	}

	return "record"
}

func formatUserFriendlyMessage(sqlErr *Error, entity string) string {
	humanEntity := humanizeText(entity)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", humanEntity)
	case UniqueViolation:
		field := "identifier"
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			field = humanizeText(column)
		}
		return fmt.Sprintf("A %s with this %s already exists", humanEntity, field)
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"
	case InvalidText:
		return "One or more values have an invalid format"
	default:
		return "An error occurred while processing your request"
	}
}

// humanizeText turns "post_content" into "Post Content".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation reads the column out of constraint names
// shaped "unique_<table>_<column>" or "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueConstraintPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
//   - *errs.HTTPError passes through unchanged
//   - constraint and input violations become 400s with stable codes
//   - no-rows errors become 404s
//   - everything else becomes a generic 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		entity := entityName(sqlErr)
		errorCode := generateErrorCode(entity, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr, entity)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)
		case UniqueViolation, CheckViolation, InvalidText:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)
		case NotNullViolation:
			fieldErrors := []errs.FieldError{{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			}}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)
		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
