package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"INVALID_AMOUNT", http.StatusBadRequest},
		{"INVALID_CURRENCY", http.StatusBadRequest},
		{"EMPTY_PACKAGES", http.StatusBadRequest},
		{ErrCodeTokenInvalid, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"BRANCH_MISMATCH", http.StatusForbidden},
		{"NOT_FOUND", http.StatusNotFound},
		{"INVALID_STATE", http.StatusConflict},
		{"ALREADY_CANCELED", http.StatusConflict},
		{"DUPLICATE_BOOKING", http.StatusConflict},
		{"CAMPAIGN_DEPARTED", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"NET_SALES_BELOW_COST", http.StatusUnprocessableEntity},
		{"NET_SALES_BELOW_RECEIVED", http.StatusUnprocessableEntity},
		{"PAY_DOWN_EXCEEDS_BALANCE", http.StatusUnprocessableEntity},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize int
		pages    int
	}{
		{"exact pages", 40, 20, 2},
		{"partial last page", 41, 20, 3},
		{"empty", 0, 20, 0},
		{"zero page size", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponseWithMeta([]int{}, tt.total, 1, tt.pageSize)
			require.NotNil(t, resp.Meta)
			assert.True(t, resp.Success)
			assert.Equal(t, tt.pages, resp.Meta.TotalPages)
		})
	}
}

func TestErrorResponseJSON(t *testing.T) {
	t.Run("omits data and details", func(t *testing.T) {
		raw, err := json.Marshal(NewErrorResponseWithRequestID("NOT_FOUND", "Ticket not found", "req-1"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"Ticket not found","request_id":"req-1"}}`, string(raw))
	})

	t.Run("validation carries field details", func(t *testing.T) {
		resp := NewValidationErrorResponse("Request validation failed", "", []ValidationDetail{
			{Field: "currency", Message: "Must be an ISO 4217 currency code"},
		})
		assert.Equal(t, ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "currency", resp.Error.Details[0].Field)
	})
}
