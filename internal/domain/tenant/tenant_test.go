package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	tn, err := NewTenant(" Acme-Travel ", "Acme Travel")
	require.NoError(t, err)
	assert.Equal(t, "acme-travel", tn.Code)
	assert.True(t, tn.IsActive())

	_, err = NewTenant("a", "x")
	assert.Error(t, err)
	_, err = NewTenant("acme_travel", "x")
	assert.Error(t, err)
	_, err = NewTenant("acme", " ")
	assert.Error(t, err)
}
