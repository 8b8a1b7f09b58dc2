package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 4, n, 10, 0, 0, 0, time.UTC)
}

func TestApplyPayments_NoPayments(t *testing.T) {
	b := ApplyPayments(212.40, nil)
	assert.Equal(t, 0.00, b.AmountPaid)
	assert.Equal(t, 212.40, b.BalanceDue)
	assert.Equal(t, StatusUnpaid, b.Status)
	assert.Empty(t, b.History)
}

func TestApplyPayments_PartialThenPaid(t *testing.T) {
	payments := []Payment{{ID: 1, Amount: 100.00, Date: day(1)}}

	b := ApplyPayments(212.40, payments)
	assert.Equal(t, 100.00, b.AmountPaid)
	assert.Equal(t, 112.40, b.BalanceDue)
	assert.Equal(t, StatusPartiallyPaid, b.Status)

	payments = append(payments, Payment{ID: 2, Amount: 112.40, Date: day(5)})
	b = ApplyPayments(212.40, payments)
	assert.Equal(t, 212.40, b.AmountPaid)
	assert.Equal(t, 0.00, b.BalanceDue)
	assert.Equal(t, StatusPaid, b.Status)
}

func TestApplyPayments_RunningBalanceChronological(t *testing.T) {
	// stored newest-first, accumulation must still be date ascending
	payments := []Payment{
		{ID: 3, Amount: 50.00, Date: day(10)},
		{ID: 2, Amount: 30.00, Date: day(5)},
		{ID: 1, Amount: 20.00, Date: day(1)},
	}

	b := ApplyPayments(200.00, payments)
	require.Len(t, b.History, 3)
	assert.Equal(t, 1, b.History[0].PaymentID)
	assert.Equal(t, 180.00, b.History[0].BalanceAfter)
	assert.Equal(t, 2, b.History[1].PaymentID)
	assert.Equal(t, 150.00, b.History[1].BalanceAfter)
	assert.Equal(t, 3, b.History[2].PaymentID)
	assert.Equal(t, 100.00, b.History[2].BalanceAfter)
}

func TestApplyPayments_SameDayTieBrokenByID(t *testing.T) {
	payments := []Payment{
		{ID: 8, Amount: 60.00, Date: day(2)},
		{ID: 7, Amount: 40.00, Date: day(2)},
	}

	b := ApplyPayments(100.00, payments)
	require.Len(t, b.History, 2)
	assert.Equal(t, 7, b.History[0].PaymentID)
	assert.Equal(t, 60.00, b.History[0].BalanceAfter)
	assert.Equal(t, 8, b.History[1].PaymentID)
	assert.Equal(t, 0.00, b.History[1].BalanceAfter)
}

func TestApplyPayments_Idempotent(t *testing.T) {
	payments := []Payment{
		{ID: 1, Amount: 75.25, Date: day(1)},
		{ID: 2, Amount: 24.75, Date: day(2)},
	}

	first := ApplyPayments(150.00, payments)
	second := ApplyPayments(150.00, payments)
	assert.Equal(t, first, second)
}

func TestValidatePayment_RejectsOverpayment(t *testing.T) {
	payments := []Payment{{ID: 1, Amount: 100.00, Date: day(1)}}

	err := ValidatePayment(212.40, payments, 112.41)
	var overErr *OverpaymentError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, 112.40, overErr.BalanceDue)
}

func TestValidatePayment_RejectsAfterSettled(t *testing.T) {
	payments := []Payment{
		{ID: 1, Amount: 100.00, Date: day(1)},
		{ID: 2, Amount: 112.40, Date: day(2)},
	}

	err := ValidatePayment(212.40, payments, 50.00)
	var overErr *OverpaymentError
	require.ErrorAs(t, err, &overErr)
}

func TestValidatePayment_ExactBalanceAllowed(t *testing.T) {
	payments := []Payment{{ID: 1, Amount: 100.00, Date: day(1)}}
	assert.NoError(t, ValidatePayment(212.40, payments, 112.40))
}

func TestValidatePayment_ZeroRejected(t *testing.T) {
	err := ValidatePayment(100.00, nil, 0)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "amount", vErr.Field)
}

func TestValidatePayment_Refunds(t *testing.T) {
	payments := []Payment{{ID: 1, Amount: 80.00, Date: day(1)}}

	// refund within amount paid is fine
	assert.NoError(t, ValidatePayment(100.00, payments, -50.00))

	// refund beyond amount paid would make amount_paid negative
	err := ValidatePayment(100.00, payments, -80.01)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestApplyPayments_RefundMovesStatusBack(t *testing.T) {
	payments := []Payment{
		{ID: 1, Amount: 100.00, Date: day(1)},
		{ID: 2, Amount: -100.00, Date: day(3)},
	}

	b := ApplyPayments(100.00, payments)
	assert.Equal(t, 0.00, b.AmountPaid)
	assert.Equal(t, StatusUnpaid, b.Status)
}
