// Package apperr carries the error taxonomy shared by services and controllers.
package apperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ErrCode string

const (
	ErrBadRequest  ErrCode = "BAD_REQUEST"
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrConflict    ErrCode = "CONFLICT"
	ErrUnavailable ErrCode = "UNAVAILABLE"
	ErrPersistence ErrCode = "PERSISTENCE"
)

type codedError struct {
	code ErrCode
	msg  string
	err  error
}

func (e *codedError) Error() string {
	if e.msg == "" {
		return string(e.code)
	}
	return e.msg
}
func (e *codedError) Code() ErrCode { return e.code }
func (e *codedError) Unwrap() error { return e.err }

func New(code ErrCode, format string, args ...any) error {
	return &codedError{code: code, msg: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) error { return New(ErrBadRequest, format, args...) }
func Conflict(format string, args ...any) error   { return New(ErrConflict, format, args...) }

// NotFound names the entity the way responses show it: "Video 3 was not found".
func NotFound(entity string, id int64) error {
	return New(ErrNotFound, "%s %d was not found", entity, id)
}

func Unavailable(format string, args ...any) error { return New(ErrUnavailable, format, args...) }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// FromDB turns Postgres data and integrity errors into ErrPersistence.
// Other errors are returned unchanged.
func FromDB(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		(pgerrcode.IsDataException(pgErr.Code) || pgerrcode.IsIntegrityConstraintViolation(pgErr.Code)) {
		return &codedError{code: ErrPersistence, msg: "Invalid data type in request body", err: err}
	}
	return err
}

// Lookup maps a repository error from a keyed read: a missing row becomes
// ErrNotFound for entity/id, everything else goes through FromDB.
func Lookup(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(entity, id)
	}
	return FromDB(err)
}
