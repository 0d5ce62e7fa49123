package dto

import (
	"net/http"
	"strings"
)

// Error codes emitted by the HTTP layer itself. Domain services raise
// their own codes (PROFILE_NOT_FOUND, PERIOD_CLOSED, ...) which are
// passed through unchanged and mapped to a status by GetHTTPStatus.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding/validation fails
	ErrCodeValidation = "VALIDATION_FAILED"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "CONFLICT"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps error codes with no structural pattern to
// HTTP status codes. Codes absent from this map fall through to the
// suffix/prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	// Authentication
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,

	// Authorization
	"FORBIDDEN": http.StatusForbidden,

	// Duplicates and races
	"ALREADY_EXISTS":          http.StatusConflict,
	"EMAIL_EXISTS":            http.StatusConflict,
	"REPORT_EXISTS":           http.StatusConflict,
	"ATTACHMENT_EXISTS":       http.StatusConflict,
	"DUPLICATE_OPEN_DISPUTE":  http.StatusConflict,
	"CONCURRENT_MODIFICATION": http.StatusConflict,
	"CONFLICT":                http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"INVALID_TRANSITION":       http.StatusUnprocessableEntity,
	"PERIOD_CLOSED":            http.StatusUnprocessableEntity,
	"INVALID_DAY":              http.StatusUnprocessableEntity,
	"INVALID_CATEGORY":         http.StatusUnprocessableEntity,
	"EMPTY_CORRECTION":         http.StatusUnprocessableEntity,
	"EMPTY_DISPUTE_MESSAGE":    http.StatusUnprocessableEntity,
	"MISSING_REJECTION_REASON": http.StatusUnprocessableEntity,
	"TOO_MANY_ALTERNATIVES":    http.StatusUnprocessableEntity,
	"RECIPIENT_INACTIVE":       http.StatusUnprocessableEntity,
	"ATTACHMENT_NOT_UPLOADED":  http.StatusUnprocessableEntity,
	"NO_ATTACHMENT":            http.StatusUnprocessableEntity,
	"SELF_DEACTIVATION":        http.StatusUnprocessableEntity,
	"SELF_DELETION":            http.StatusUnprocessableEntity,
	"INVALID_APPROVER":         http.StatusUnprocessableEntity,
	"INVALID_REJECTER":         http.StatusUnprocessableEntity,

	// Input errors
	"BAD_REQUEST":       http.StatusBadRequest,
	"VALIDATION_FAILED": http.StatusBadRequest,

	// Payload
	"REQUEST_TOO_LARGE": http.StatusRequestEntityTooLarge,

	// Infrastructure failures
	"INTERNAL_ERROR":       http.StatusInternalServerError,
	"DB_ERROR":             http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR":  http.StatusInternalServerError,
	"TOKEN_ERROR":          http.StatusInternalServerError,
	"UPLOAD_URL_FAILED":    http.StatusInternalServerError,
	"STORAGE_CHECK_FAILED": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes are matched structurally: *_NOT_FOUND maps to 404,
// INVALID_* and EMPTY_* map to 400, everything else to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if code == "NOT_FOUND" || strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	if strings.HasPrefix(code, "INVALID_") || strings.HasPrefix(code, "EMPTY_") || strings.HasPrefix(code, "MISSING_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
