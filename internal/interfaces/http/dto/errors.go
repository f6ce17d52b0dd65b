package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState       = "ERR_INVALID_STATE"
	ErrCodeBusinessRule       = "ERR_BUSINESS_RULE"
	ErrCodeLotConflict        = "ERR_LOT_CONFLICT"
	ErrCodeUnreservableStock  = "ERR_UNRESERVABLE_STOCK"
	ErrCodeProductNotAllowed  = "ERR_PRODUCT_TYPE_NOT_ALLOWED"
	ErrCodeMovementDone       = "ERR_MOVEMENT_DONE"
	ErrCodeUnsupportedPolicy  = "ERR_UNSUPPORTED_POLICY"
	ErrCodeLineMissingProduct = "ERR_LINE_MISSING_PRODUCT"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeLotConflict:         http.StatusConflict,

	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:       http.StatusUnprocessableEntity,
	ErrCodeUnreservableStock:  http.StatusUnprocessableEntity,
	ErrCodeProductNotAllowed:  http.StatusUnprocessableEntity,
	ErrCodeMovementDone:       http.StatusUnprocessableEntity,
	ErrCodeUnsupportedPolicy:  http.StatusUnprocessableEntity,
	ErrCodeLineMissingProduct: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"DUPLICATE_CODE":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"LOT_CONFLICT":         ErrCodeLotConflict,

	"INVALID_INPUT":    ErrCodeInvalidInput,
	"INVALID_CODE":     ErrCodeInvalidInput,
	"INVALID_LABEL":    ErrCodeInvalidInput,
	"INVALID_LINE":     ErrCodeInvalidInput,
	"INVALID_LOCATION": ErrCodeInvalidInput,
	"INVALID_MOVEMENT": ErrCodeInvalidInput,
	"INVALID_NAME":     ErrCodeInvalidInput,
	"INVALID_NUMBER":   ErrCodeInvalidInput,
	"INVALID_PARTNER":  ErrCodeInvalidInput,
	"INVALID_PRODUCT":  ErrCodeInvalidInput,
	"INVALID_QUANTITY": ErrCodeInvalidInput,
	"INVALID_TYPE":     ErrCodeInvalidInput,
	"INVALID_UNIT":     ErrCodeInvalidInput,

	"INVALID_STATE":            ErrCodeInvalidState,
	"NO_ITEMS":                 ErrCodeBusinessRule,
	"NO_LINES":                 ErrCodeBusinessRule,
	"NO_EXPIRY":                ErrCodeBusinessRule,
	"LINE_MISSING_PRODUCT":     ErrCodeLineMissingProduct,
	"PRODUCT_TYPE_NOT_ALLOWED": ErrCodeProductNotAllowed,
	"UNRESERVABLE_STOCK":       ErrCodeUnreservableStock,
	"MOVEMENT_DONE":            ErrCodeMovementDone,
	"UNSUPPORTED_POLICY":       ErrCodeUnsupportedPolicy,
	"UNSUPPORTED_TYPE":         ErrCodeInvalidInput,

	"LINE_NOT_FOUND": ErrCodeNotFound,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// If the code is already standardized or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
