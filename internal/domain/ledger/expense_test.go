package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseLifecycle(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	e, err := NewExpense(uuid.New(), "Rent", "office", dec("1200"), "", date)
	require.NoError(t, err)
	assert.Equal(t, ExpenseStatusPending, e.Status)
	assert.Equal(t, "2026-03", e.MonthKey())

	assert.Error(t, e.MarkPaid(time.Now()))
	require.NoError(t, e.Approve(uuid.New(), time.Now()))
	assert.Error(t, e.Approve(uuid.New(), time.Now()))
	require.NoError(t, e.MarkPaid(time.Now()))
	assert.Equal(t, ExpenseStatusPaid, e.Status)
}

func TestExpenseReject(t *testing.T) {
	e, err := NewExpense(uuid.New(), "Travel", "", dec("10"), "", time.Now())
	require.NoError(t, err)
	assert.Error(t, e.Reject(uuid.New(), " "))
	require.NoError(t, e.Reject(uuid.New(), "duplicate"))
	assert.Equal(t, ExpenseStatusRejected, e.Status)
}

func TestNewExpenseValidation(t *testing.T) {
	_, err := NewExpense(uuid.New(), "", "", dec("10"), "", time.Now())
	assert.Error(t, err)
	_, err = NewExpense(uuid.New(), "Rent", "", dec("-1"), "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = NewExpense(uuid.New(), "Rent", "", dec("1"), "", time.Time{})
	assert.Error(t, err)
}

func TestNewAdjustment(t *testing.T) {
	_, err := NewAdjustment(uuid.New(), uuid.New(), dec("800"), dec("750"), dec("500"), dec("500"), "", nil)
	assert.Error(t, err)

	a, err := NewAdjustment(uuid.New(), uuid.New(), dec("800"), dec("750"), dec("500"), dec("500"), "fare drop", nil)
	require.NoError(t, err)
	assert.True(t, a.SalesDelta().Equal(dec("-50")))
}
