package errors

import "marketplace/internal/errors"

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Kind    Kind   `json:"kind"`              // Failure category, e.g., "NOT_FOUND"
	Code    string `json:"code"`              // Business error code, e.g., "USER_NOT_FOUND"
	Message string `json:"message"`           // User-friendly error message
	Details string `json:"details,omitempty"` // Detailed error information (optional)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	OperationID string `json:"operation_id,omitempty"` // Operation correlation ID
}

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// Describe converts err into an ErrorInfo. Errors outside the taxonomy are
// reported as internal without leaking their text.
func Describe(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	if appErr, ok := errors.AsType[AppError](err); ok {
		return &ErrorInfo{
			Kind:    appErr.Kind(),
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
			Details: appErr.Details(),
		}
	}

	return &ErrorInfo{
		Kind:    KindInternal,
		Code:    ErrInternalError.ErrorCode(),
		Message: ErrInternalError.Message(),
	}
}
