package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelerp/backend/internal/interfaces/http/dto"
)

type rateBody struct {
	Currency string  `json:"currency" binding:"required,currency"`
	Rate     float64 `json:"rate" binding:"required,gt=0"`
	Note     string  `json:"note" binding:"max=5"`
}

func TestCurrencyTag(t *testing.T) {
	v := validator.New()
	RegisterValidations(v)

	type payload struct {
		Code string `json:"code" validate:"currency"`
	}
	tests := []struct {
		code string
		ok   bool
	}{
		{"USD", true},
		{"SAR", true},
		{"BDT", true},
		{"", true},
		{"usd", false},
		{"XYZ", false},
		{"DOLLAR", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := v.Struct(payload{Code: tt.code})
			assert.Equal(t, tt.ok, err == nil)
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	require.NoError(t, SetupValidator())

	r := gin.New()
	r.Use(RequestID())
	r.POST("/rates", func(c *gin.Context) {
		var body rateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/rates", strings.NewReader(`{"currency":"usd","note":"too long"}`)))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "Must be an ISO 4217 currency code", fields["currency"])
	assert.Equal(t, "This field is required", fields["rate"])
	assert.Equal(t, "Must be at most 5 characters", fields["note"])

	w = serve(r, httptest.NewRequest(http.MethodPost, "/rates", strings.NewReader(`{"currency":"SAR","rate":3.75}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}
