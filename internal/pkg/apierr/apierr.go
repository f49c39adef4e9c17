package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error codes exposed in the API error envelope.
const (
	CodeUnauthorized        = "Unauthorized"
	CodeBadRequest          = "BadRequest"
	CodeNotFound            = "NotFound"
	CodeConflict            = "Conflict"
	CodeInternalServerError = "InternalServerError"
)

// Error carries an HTTP status, a taxonomy code, a client-facing message and
// the underlying cause. Msg is the only part that may reach a response body;
// Err is for logs and errors.Is/As inspection.
type Error struct {
	Status int
	Code   string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Code != "":
		return e.Code
	case e.Status != 0:
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

// Message returns the text safe to put in a response body. Driver and
// connection detail lives in Err and never comes back from here.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Status >= http.StatusInternalServerError || e.Status == 0 {
		return "internal server error"
	}
	return http.StatusText(e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code, msg string, err error) *Error {
	return &Error{Status: status, Code: code, Msg: msg, Err: err}
}

func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, msg, nil)
}

func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, msg, nil)
}

func BadRequestf(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, fmt.Sprintf(format, args...), nil)
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, CodeNotFound, msg, nil)
}

func Conflict(msg string) *Error {
	return New(http.StatusConflict, CodeConflict, msg, nil)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternalServerError, "internal server error", err)
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// FromStorage classifies a storage-layer failure into the API taxonomy by
// inspecting structured error values, never the message text. GORM's
// translated sentinels cover every dialect; the SQLSTATE branch catches raw
// pgconn errors that bypass translation. 23505 (unique_violation) means a
// conflicting row already exists; 23503 (foreign_key_violation) means the
// caller referenced a missing row.
func FromStorage(op string, err error) *Error {
	if err == nil {
		return nil
	}
	if apiErr, ok := As(err); ok {
		return apiErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("resource not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return New(http.StatusConflict, CodeConflict, "a conflicting resource already exists", fmt.Errorf("%s: %w", op, err))
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return New(http.StatusBadRequest, CodeBadRequest, "referenced resource not found", fmt.Errorf("%s: %w", op, err))
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return New(http.StatusConflict, CodeConflict, "a conflicting resource already exists", fmt.Errorf("%s: %w", op, err))
		case "23503":
			return New(http.StatusBadRequest, CodeBadRequest, "referenced resource not found", fmt.Errorf("%s: %w", op, err))
		}
	}
	return New(http.StatusInternalServerError, CodeInternalServerError, "internal server error", fmt.Errorf("%s: %w", op, err))
}
