package partner

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Alice", false},
		{"trimmed", "  Bob ", false},
		{"empty", "   ", true},
		{"too long", strings.Repeat("a", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(uuid.New(), tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.input), c.Name)
		})
	}
}

func TestCustomer_UpdateContact(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Alice")
	require.NoError(t, err)

	assert.Error(t, c.UpdateContact("not-an-email", "", ""))
	require.NoError(t, c.UpdateContact("alice@example.com", "+8801", "BD"))
	assert.Equal(t, "BD", c.Country)
	assert.Equal(t, 2, c.GetVersion())
}
