package errors

import (
	"fmt"

	"marketplace/internal/errors"
)

// Kind classifies a failure so callers can translate it into their own
// messages or status codes.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindValidation   Kind = "VALIDATION"
	KindConflict     Kind = "CONFLICT"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindInternal     Kind = "INTERNAL"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Failure category
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// Is matches any BaseError carrying the same error code, so copies made by
// WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the failure category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithDetailsf adds formatted detailed error information
func (e *BaseError) WithDetailsf(format string, args ...any) *BaseError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// Predefined error types
var (
	// Lookup errors
	ErrUserNotFound          = NewBaseError(KindNotFound, "USER_NOT_FOUND", "user not found", "")
	ErrReportedUserNotFound  = NewBaseError(KindNotFound, "REPORTED_USER_NOT_FOUND", "reported user not found", "")
	ErrVendorNotFound        = NewBaseError(KindNotFound, "VENDOR_NOT_FOUND", "vendor not found", "")
	ErrModeratorNotFound     = NewBaseError(KindNotFound, "MODERATOR_NOT_FOUND", "moderator not found", "")
	ErrCategoryNotFound      = NewBaseError(KindNotFound, "CATEGORY_NOT_FOUND", "category not found", "")
	ErrVideogameNotFound     = NewBaseError(KindNotFound, "VIDEOGAME_NOT_FOUND", "videogame not found", "")
	ErrOrderNotFound         = NewBaseError(KindNotFound, "ORDER_NOT_FOUND", "order not found", "")
	ErrTransactionNotFound   = NewBaseError(KindNotFound, "TRANSACTION_NOT_FOUND", "transaction not found", "")
	ErrReportNotFound        = NewBaseError(KindNotFound, "REPORT_NOT_FOUND", "report not found", "")
	ErrSupportTicketNotFound = NewBaseError(KindNotFound, "SUPPORT_TICKET_NOT_FOUND", "support ticket not found", "")
	ErrBadgeNotFound         = NewBaseError(KindNotFound, "BADGE_NOT_FOUND", "badge not found", "")
	ErrChallengeNotFound     = NewBaseError(KindNotFound, "CHALLENGE_NOT_FOUND", "challenge not found", "")

	// Validation-related errors
	ErrValidationFailed   = NewBaseError(KindValidation, "VALIDATION_FAILED", "input validation failed", "")
	ErrDuplicateEmail     = NewBaseError(KindValidation, "DUPLICATE_EMAIL", "email is already registered", "")
	ErrDuplicateUsername  = NewBaseError(KindValidation, "DUPLICATE_USERNAME", "username is already taken", "")
	ErrDuplicateAccount   = NewBaseError(KindValidation, "DUPLICATE_ACCOUNT", "email or username is already registered", "")
	ErrPasswordTooShort   = NewBaseError(KindValidation, "PASSWORD_TOO_SHORT", "password is too short", "")
	ErrPasswordUnchanged  = NewBaseError(KindValidation, "PASSWORD_UNCHANGED", "new password must differ from the current one", "")
	ErrInvalidEmail       = NewBaseError(KindValidation, "INVALID_EMAIL", "email is not valid", "")
	ErrInvalidPrice       = NewBaseError(KindValidation, "INVALID_PRICE", "price must be greater than zero", "")
	ErrInvalidPriceRange  = NewBaseError(KindValidation, "INVALID_PRICE_RANGE", "price range is not valid", "")
	ErrInvalidAmount      = NewBaseError(KindValidation, "INVALID_AMOUNT", "amount is not valid", "")
	ErrFutureDate         = NewBaseError(KindValidation, "FUTURE_DATE", "date cannot be in the future", "")
	ErrEmptySelection     = NewBaseError(KindValidation, "EMPTY_SELECTION", "at least one videogame must be selected", "")
	ErrSelfReport         = NewBaseError(KindValidation, "SELF_REPORT", "users cannot report themselves", "")

	// State-machine and business-rule errors
	ErrReportSolved          = NewBaseError(KindConflict, "REPORT_SOLVED", "report is already solved", "")
	ErrSupportTicketSolved   = NewBaseError(KindConflict, "SUPPORT_TICKET_SOLVED", "support ticket is already solved", "")
	ErrSupportTicketUnsolved = NewBaseError(KindConflict, "SUPPORT_TICKET_UNSOLVED", "only solved support tickets can be deleted", "")
	ErrOrderAlreadyPaid      = NewBaseError(KindConflict, "ORDER_ALREADY_PAID", "order already has a transaction", "")
	ErrTransactionAboveCap   = NewBaseError(KindConflict, "TRANSACTION_ABOVE_CAP", "transaction total is above the deletion cap", "")
	ErrVideogameAboveCap     = NewBaseError(KindConflict, "VIDEOGAME_ABOVE_CAP", "videogame price is above the deletion cap", "")
	ErrAdminAccount          = NewBaseError(KindConflict, "ADMIN_ACCOUNT", "administrator accounts cannot be deleted", "")
	ErrSupportAccount        = NewBaseError(KindConflict, "SUPPORT_ACCOUNT", "support accounts cannot be deleted", "")

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(KindUnauthorized, "INVALID_CREDENTIALS", "email or password is incorrect", "")
	ErrInvalidAdminCode   = NewBaseError(KindUnauthorized, "INVALID_ADMIN_CODE", "administrative code is not valid", "")

	// General errors
	ErrInternalError = NewBaseError(KindInternal, "INTERNAL_ERROR", "internal error", "")
)

// KindOf returns the category of the first AppError found in err's chain.
// Errors that carry no AppError are reported as KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if appErr, ok := errors.AsType[AppError](err); ok {
		return appErr.Kind()
	}

	return KindInternal
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the failure category
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
