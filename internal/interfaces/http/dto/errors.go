package dto

import (
	"net/http"
	"strings"
)

// Transport level codes. Domain errors keep their own codes (NOT_FOUND,
// NET_SALES_BELOW_COST, ...) and are rendered verbatim.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid    = "INVALID_TOKEN"
	ErrCodeTokenNotYet     = "TOKEN_NOT_VALID"
	ErrCodeTenantUnknown   = "TENANT_UNRESOLVED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeTimeout         = "TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeTimeout:  http.StatusGatewayTimeout,

	// Input
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidJSON:   http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	"INVALID_INPUT":      http.StatusBadRequest,
	"TENANT_REQUIRED":    http.StatusBadRequest,
	"CUSTOMER_REQUIRED":  http.StatusBadRequest,
	"REFERENCE_REQUIRED": http.StatusBadRequest,
	"EMPTY_ITEMS":        http.StatusBadRequest,
	"EMPTY_PACKAGES":     http.StatusBadRequest,
	"SAME_BRANCH":        http.StatusBadRequest,
	"RANGE_TOO_LARGE":    http.StatusBadRequest,

	// Auth
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeTokenExpired:  http.StatusUnauthorized,
	ErrCodeTokenInvalid:  http.StatusUnauthorized,
	ErrCodeTokenNotYet:   http.StatusUnauthorized,
	ErrCodeTenantUnknown: http.StatusUnauthorized,
	"FORBIDDEN":          http.StatusForbidden,
	"BRANCH_MISMATCH":    http.StatusForbidden,

	// Resources and state
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_STATE":        http.StatusConflict,
	"ALREADY_CANCELED":     http.StatusConflict,
	"DUPLICATE_BOOKING":    http.StatusConflict,
	"CAMPAIGN_DEPARTED":    http.StatusConflict,
	"CAMPAIGN_CANCELED":    http.StatusConflict,
	"BOOKING_CANCELED":     http.StatusConflict,
	"TICKET_CANCELED":      http.StatusConflict,
	"VISA_CANCELED":        http.StatusConflict,
	"SHIPMENT_DELIVERED":   http.StatusConflict,
	"STATUS_UNCHANGED":     http.StatusConflict,
	"PAYABLE_CANCELED":     http.StatusConflict,
	"PAYMENT_INACTIVE":     http.StatusConflict,

	// Ledger rules
	"NET_SALES_BELOW_COST":     http.StatusUnprocessableEntity,
	"NET_SALES_BELOW_RECEIVED": http.StatusUnprocessableEntity,
	"PAY_DOWN_EXCEEDS_BALANCE": http.StatusUnprocessableEntity,
	"CURRENCY_MISMATCH":        http.StatusUnprocessableEntity,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted INVALID_* codes are field validation failures (400); anything
// else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
