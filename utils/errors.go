package utils

import "net/http"

// Error codes surfaced to the mobile client. The client looks the code up
// in its own table too, so the set here mirrors what it already knows:
// identity errors, document-store errors and storage errors.
const (
	ErrInvalidCredentials = "auth/invalid-credential"
	ErrEmailExists        = "auth/email-already-in-use"
	ErrUserNotFound       = "auth/user-not-found"
	ErrWrongPassword      = "auth/wrong-password"
	ErrWeakPassword       = "auth/weak-password"
	ErrInvalidEmail       = "auth/invalid-email"
	ErrAccountExists      = "auth/account-exists-with-different-credential"
	ErrOperationDenied    = "auth/operation-not-allowed"
	ErrUserDisabled       = "auth/user-disabled"
	ErrExpiredCode        = "auth/expired-action-code"
	ErrQuotaExceeded      = "auth/quota-exceeded"
	ErrRecentLoginNeeded  = "auth/requires-recent-login"

	ErrPermissionDenied = "permission-denied"
	ErrUnavailable      = "unavailable"
	ErrAlreadyExists    = "already-exists"
	ErrNotFound         = "not-found"

	ErrUnauthorized       = "unauthorized"
	ErrUnauthenticated    = "unauthenticated"
	ErrRetryLimitExceeded = "retry-limit-exceeded"

	ErrUnknown = "unknown"
)

var errorMessages = map[string]string{
	ErrInvalidCredentials: "Invalid email or password",
	ErrEmailExists:        "Email already in use",
	ErrUserNotFound:       "User not found",
	ErrWrongPassword:      "Incorrect password",
	ErrWeakPassword:       "Password should be at least 6 characters",
	ErrInvalidEmail:       "Invalid email address",
	ErrAccountExists:      "Account already exists with different credentials",
	ErrOperationDenied:    "Operation not allowed",
	ErrUserDisabled:       "Account has been disabled",
	ErrExpiredCode:        "Action code has expired",
	ErrQuotaExceeded:      "Quota exceeded, please try again later",
	ErrRecentLoginNeeded:  "Please log in again to complete this action",

	ErrPermissionDenied: "Permission denied",
	ErrUnavailable:      "Service temporarily unavailable",
	ErrAlreadyExists:    "Document already exists",
	ErrNotFound:         "Document not found",

	ErrUnauthorized:       "Unauthorized access",
	ErrUnauthenticated:    "User not authenticated",
	ErrRetryLimitExceeded: "Too many attempts, please try again later",
}

const fallbackMessage = "An unexpected error occurred"

// ErrorMessage translates a code into the human-readable string the client
// shows in its alert. Unknown codes get the generic fallback.
func ErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return fallbackMessage
}

// AppError is the only error type crossing the service/controller boundary.
type AppError struct {
	Code string
	Err  error // wrapped cause, optional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *AppError) Unwrap() error { return e.Err }

// Message returns the translated user-facing string.
func (e *AppError) Message() string { return ErrorMessage(e.Code) }

func NewAppError(code string) *AppError { return &AppError{Code: code} }

func WrapAppError(code string, err error) *AppError { return &AppError{Code: code, Err: err} }

var statusByCode = map[string]int{
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrUserNotFound:       http.StatusNotFound,
	ErrWrongPassword:      http.StatusUnauthorized,
	ErrUserDisabled:       http.StatusForbidden,
	ErrRecentLoginNeeded:  http.StatusUnauthorized,
	ErrUnauthenticated:    http.StatusUnauthorized,
	ErrUnauthorized:       http.StatusForbidden,
	ErrPermissionDenied:   http.StatusForbidden,
	ErrEmailExists:        http.StatusConflict,
	ErrAlreadyExists:      http.StatusConflict,
	ErrAccountExists:      http.StatusConflict,
	ErrWeakPassword:       http.StatusBadRequest,
	ErrInvalidEmail:       http.StatusBadRequest,
	ErrExpiredCode:        http.StatusBadRequest,
	ErrNotFound:           http.StatusNotFound,
	ErrQuotaExceeded:      http.StatusTooManyRequests,
	ErrRetryLimitExceeded: http.StatusTooManyRequests,
	ErrUnavailable:        http.StatusServiceUnavailable,
	ErrOperationDenied:    http.StatusForbidden,
}

// HTTPStatus maps an error code to a response status, 500 for anything
// outside the table.
func HTTPStatus(code string) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
