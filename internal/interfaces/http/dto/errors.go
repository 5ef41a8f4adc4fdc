package dto

import "net/http"

// Error codes raised by the HTTP layer itself. Domain errors keep the code
// they were created with (NOT_FOUND, SPLITS_PENDING, ...).
const (
	ErrCodeInternal    = "ERR_INTERNAL"
	ErrCodeValidation  = "ERR_VALIDATION"
	ErrCodeBadRequest  = "ERR_BAD_REQUEST"
	ErrCodeInvalidID   = "ERR_INVALID_ID"
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	ErrCodeBodyTooBig  = "ERR_BODY_TOO_LARGE"

	// ErrCodeUnauthorized is used when the bearer token is missing
	ErrCodeUnauthorized = "UNAUTHORIZED"
)

// Domain error codes that need a status other than the category default
const (
	CodeNotFound            = "NOT_FOUND"
	CodeSplitNotFound       = "SPLIT_NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeOrderBusy           = "ORDER_BUSY"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeLedgerMismatch      = "LEDGER_MISMATCH"
	CodeStorageUnavailable  = "STORAGE_UNAVAILABLE"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeAccountLocked       = "ACCOUNT_LOCKED"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeTokenInvalid        = "TOKEN_INVALID"
	CodeTokenRevoked        = "TOKEN_REVOKED"
	CodeTokenMaxRefresh     = "TOKEN_MAX_REFRESH"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Codes that are
// not listed are business rule violations and map to 422.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidID:   http.StatusBadRequest,
	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeBodyTooBig:  http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized:    http.StatusUnauthorized,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeTokenExpired:       http.StatusUnauthorized,
	CodeTokenInvalid:       http.StatusUnauthorized,
	CodeTokenRevoked:       http.StatusUnauthorized,
	CodeTokenMaxRefresh:    http.StatusUnauthorized,
	CodeAccountLocked:      http.StatusTooManyRequests,

	CodeNotFound:      http.StatusNotFound,
	CodeSplitNotFound: http.StatusNotFound,

	CodeAlreadyExists:       http.StatusConflict,
	CodeConcurrencyConflict: http.StatusConflict,
	CodeOrderBusy:           http.StatusConflict,

	CodeInvalidInput: http.StatusBadRequest,

	CodeLedgerMismatch:     http.StatusInternalServerError,
	CodeStorageUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if code == "" {
		return http.StatusInternalServerError
	}
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
