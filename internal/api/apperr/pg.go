package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Map well-known constraint names to fields (extend as you add constraints)
var constraintField = map[string]string{
	"books_pkey": "isbn",
}

// pgError carries the field detail of a classified PgError.
type pgError struct {
	field string
	code  string
	err   *pgconn.PgError
}

func (e *pgError) Error() string { return e.err.Error() }
func (e *pgError) Unwrap() error { return e.err }

// Guess a field from a column name present in PG error detail
func fieldFromDetail(detail string) string {
	for _, k := range []string{"isbn", "amazon_url", "author", "language", "pages", "publisher", "title", "year"} {
		if strings.Contains(detail, "("+k+")") {
			return k
		}
	}
	return ""
}

// FromPG maps a *pgconn.PgError to an *Error. Returns (nil, false) for
// anything else.
func FromPG(err error) (*Error, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return nil, false
	}

	field := constraintField[pg.ConstraintName]
	if field == "" && pg.ColumnName != "" {
		field = pg.ColumnName
	}
	if field == "" && pg.Detail != "" {
		field = fieldFromDetail(pg.Detail)
	}
	if field == "" {
		field = "book"
	}
	wrap := func(code string) error { return &pgError{field: field, code: code, err: pg} }

	switch pg.Code {
	case "23505": // unique_violation
		msg := "a book with this " + field + " already exists"
		return Constraint(msg, wrap("unique")), true
	case "23502": // not_null_violation
		return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Messages: []string{field + " is required"}, Err: wrap("not_null")}, true
	case "23514": // check_violation
		return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Messages: []string{field + " violates a constraint"}, Err: wrap("check")}, true
	case "22001": // string_data_right_truncation
		return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Messages: []string{field + " is too long"}, Err: wrap("too_long")}, true
	case "22003": // numeric_value_out_of_range
		return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Messages: []string{field + " is out of range"}, Err: wrap("out_of_range")}, true
	case "22P02": // invalid_text_representation
		return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Messages: []string{field + " has an invalid format"}, Err: wrap("invalid")}, true
	default:
		return Unexpected(pg), true
	}
}

func fieldErrors(e *Error) ([]FieldError, bool) {
	var pe *pgError
	if !errors.As(e, &pe) {
		return nil, false
	}
	msg := ""
	if len(e.Messages) > 0 {
		msg = e.Messages[0]
	}
	return []FieldError{{Field: pe.field, Code: pe.code, Message: msg}}, true
}
