package usecase

import (
	"errors"
	"fmt"

	"kickstreet/pkg/utils"
)

// Kinds of failure a service can report. Handlers map them to HTTP status codes.
var (
	ErrValidation           = errors.New("validation failed")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNotVerified          = errors.New("account not verified")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrLimitExceeded        = errors.New("limit exceeded")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrAlreadyVerified      = errors.New("already verified")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired OTP")
	ErrUpstream             = errors.New("upstream service failure")
)

// Error is a failure of a known kind with a message fit for the client.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// validate runs the struct tags of req and reports the first failures as ErrValidation.
func validate(req any) error {
	errs := utils.ValidateStruct(req)
	if len(errs) == 0 {
		return nil
	}
	return &Error{
		Kind:    ErrValidation,
		Message: "validation failed: " + utils.FormatValidationErrors(errs),
		Fields:  errs,
	}
}
