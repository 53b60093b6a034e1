package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error for translation into an HTTP response
type Kind int

const (
	InternalError Kind = iota
	MissingToken
	InvalidToken
	TokenExpired
	PrincipalNotFound
	PrincipalDisabled
	InsufficientRole
	InvalidCredentials
	AccountLocked
	ValidationFailed
	NotFound
	InvalidIDFormat
	QueryTooShort
	BadRequest
)

var kindNames = map[Kind]string{
	InternalError:      "INTERNAL_ERROR",
	MissingToken:       "MISSING_TOKEN",
	InvalidToken:       "INVALID_TOKEN",
	TokenExpired:       "TOKEN_EXPIRED",
	PrincipalNotFound:  "PRINCIPAL_NOT_FOUND",
	PrincipalDisabled:  "PRINCIPAL_DISABLED",
	InsufficientRole:   "INSUFFICIENT_ROLE",
	InvalidCredentials: "INVALID_CREDENTIALS",
	AccountLocked:      "ACCOUNT_LOCKED",
	ValidationFailed:   "VALIDATION_FAILED",
	NotFound:           "NOT_FOUND",
	InvalidIDFormat:    "INVALID_ID_FORMAT",
	QueryTooShort:      "QUERY_TOO_SHORT",
	BadRequest:         "BAD_REQUEST",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[InternalError]
}

// Status returns the HTTP status code for the kind
func (k Kind) Status() int {
	switch k {
	case MissingToken, InvalidToken, TokenExpired, PrincipalNotFound, PrincipalDisabled, InvalidCredentials:
		return fiber.StatusUnauthorized
	case InsufficientRole:
		return fiber.StatusForbidden
	case AccountLocked:
		return fiber.StatusLocked
	case ValidationFailed, InvalidIDFormat, QueryTooShort, BadRequest:
		return fiber.StatusBadRequest
	case NotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// FieldError describes one failed field; Field is a dotted path
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error carried from services and handlers to the
// response layer
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind that keeps the cause for logging
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps an unexpected failure. The message is what the client sees.
func Internal(message string, err error) *Error {
	return Wrap(InternalError, message, err)
}

// Validation creates a ValidationFailed error carrying field errors
func Validation(fields []FieldError) *Error {
	return &Error{Kind: ValidationFailed, Message: "Validation failed", Fields: fields}
}

// KindOf returns the kind of err, or InternalError when err is not an *Error
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return InternalError
}

// Is reports whether err is an *Error of the given kind
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
