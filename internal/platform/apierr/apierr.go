package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	pkgerrors "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/pkg/errors"
)

const (
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeInternal   = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation reports bad caller input on a single field.
func Validation(field, format string, args ...any) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   CodeValidation,
		Field:  field,
		Err:    fmt.Errorf("%w: "+format, append([]any{pkgerrors.ErrInvalidArgument}, args...)...),
	}
}

func NotFound(what string) *Error {
	return &Error{
		Status: http.StatusNotFound,
		Code:   CodeNotFound,
		Err:    fmt.Errorf("%s %w", what, pkgerrors.ErrNotFound),
	}
}

func Conflict(err error) *Error {
	return &Error{Status: http.StatusConflict, Code: CodeConflict, Err: errors.Join(pkgerrors.ErrConflict, err)}
}

func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Err: err}
}

// From classifies any error into an *Error. Unknown errors become internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Err: err}
	case errors.Is(err, pkgerrors.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Err: err}
	case errors.Is(err, pkgerrors.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Status: http.StatusConflict, Code: CodeConflict, Err: err}
	default:
		return Internal(err)
	}
}

func IsValidation(err error) bool {
	return From(err).Code == CodeValidation
}

func IsNotFound(err error) bool {
	return From(err).Code == CodeNotFound
}
