package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes emitted by the tuition and ledger domains keep their names on the
// wire; this table only decides the status line.
var ErrorCodeHTTPStatus = map[string]int{
	// General
	ErrCodeInternal:     http.StatusInternalServerError,
	"PERSISTENCE_ERROR": http.StatusInternalServerError,

	// Input / validation -> 400 Bad Request
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeInvalidJSON:       http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_DISCOUNT":       http.StatusBadRequest,
	"INVALID_DOWN_PAYMENT":   http.StatusBadRequest,
	"INVALID_PERIOD":         http.StatusBadRequest,
	"INVALID_REASON":         http.StatusBadRequest,
	"INVALID_STUDENT":        http.StatusBadRequest,
	"INVALID_SERVICE":        http.StatusBadRequest,
	"INVALID_ACCOUNT":        http.StatusBadRequest,
	"INVALID_CATEGORY":       http.StatusBadRequest,
	"INVALID_INSTALLMENT":    http.StatusBadRequest,
	"INVALID_PAYMENT_METHOD": http.StatusBadRequest,

	// Auth
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	"TOKEN_EXPIRED":     http.StatusUnauthorized,
	"INVALID_TOKEN":     http.StatusUnauthorized,
	"TOKEN_REVOKED":     http.StatusUnauthorized,

	// Resource lookups -> 404 Not Found
	ErrCodeNotFound:     http.StatusNotFound,
	"STUDENT_NOT_FOUND": http.StatusNotFound,
	"SERVICE_NOT_FOUND": http.StatusNotFound,

	// Conflicts -> 409 Conflict
	ErrCodeConflict:           http.StatusConflict,
	"DUPLICATE_ASSIGNMENT":    http.StatusConflict,
	"ALREADY_CANCELLED":       http.StatusConflict,
	"CONCURRENT_MODIFICATION": http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"INVALID_STATE":              http.StatusUnprocessableEntity,
	"EXCEEDS_REMAINING":          http.StatusUnprocessableEntity,
	"SERVICE_INACTIVE":           http.StatusUnprocessableEntity,
	"MISSING_SETTLEMENT_ACCOUNT": http.StatusUnprocessableEntity,

	// Rate limiting
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
