package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLine_DiscountBeforeTax(t *testing.T) {
	// qty=2, price=100.00, discount=10%, tax=18%
	amounts, err := ComputeLine(LineItem{
		ProductID:       1,
		Quantity:        2,
		UnitPrice:       100.00,
		DiscountPercent: 10,
		TaxRate:         18,
	})
	require.NoError(t, err)
	assert.InDelta(t, 180.00, amounts.Total, 0.001)
	assert.InDelta(t, 32.40, amounts.Tax, 0.001)
}

func TestComputeLine_Validation(t *testing.T) {
	tests := []struct {
		name  string
		item  LineItem
		field string
	}{
		{"zero quantity", LineItem{Quantity: 0, UnitPrice: 10}, "quantity"},
		{"negative quantity", LineItem{Quantity: -3, UnitPrice: 10}, "quantity"},
		{"negative price", LineItem{Quantity: 1, UnitPrice: -0.01}, "unit_price"},
		{"discount over 100", LineItem{Quantity: 1, UnitPrice: 10, DiscountPercent: 101}, "discount_percentage"},
		{"negative discount", LineItem{Quantity: 1, UnitPrice: 10, DiscountPercent: -1}, "discount_percentage"},
		{"negative tax", LineItem{Quantity: 1, UnitPrice: 10, TaxRate: -5}, "tax_rate"},
		{"tax over 100", LineItem{Quantity: 1, UnitPrice: 10, TaxRate: 120}, "tax_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLine(tt.item)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestComputeTotals_SingleLine(t *testing.T) {
	totals, lines, err := ComputeTotals([]LineItem{
		{ProductID: 1, Quantity: 2, UnitPrice: 100.00, DiscountPercent: 10, TaxRate: 18},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 180.00, lines[0].Total)
	assert.Equal(t, 32.40, lines[0].Tax)
	assert.Equal(t, 180.00, totals.Subtotal)
	assert.Equal(t, 32.40, totals.TaxAmount)
	assert.Equal(t, 212.40, totals.TotalAmount)
}

func TestComputeTotals_MultipleLines(t *testing.T) {
	totals, lines, err := ComputeTotals([]LineItem{
		{ProductID: 1, Quantity: 3, UnitPrice: 50.00, TaxRate: 5},
		{ProductID: 2, Quantity: 1, UnitPrice: 999.99, DiscountPercent: 25, TaxRate: 12},
		{ProductID: 3, Quantity: 10, UnitPrice: 12.50, DiscountPercent: 100},
	})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	// 150.00 + 749.9925 + 0.00, rounded at the aggregate
	assert.Equal(t, 899.99, totals.Subtotal)
	// 7.50 + 89.999
	assert.Equal(t, 97.50, totals.TaxAmount)
	assert.Equal(t, totals.TotalAmount, Round2(totals.Subtotal+totals.TaxAmount))
}

func TestComputeTotals_OrderIndependent(t *testing.T) {
	items := []LineItem{
		{ProductID: 1, Quantity: 2, UnitPrice: 33.33, TaxRate: 18},
		{ProductID: 2, Quantity: 7, UnitPrice: 14.99, DiscountPercent: 5, TaxRate: 12},
		{ProductID: 3, Quantity: 1, UnitPrice: 250.00, DiscountPercent: 50, TaxRate: 28},
	}
	reversed := []LineItem{items[2], items[1], items[0]}

	a, _, err := ComputeTotals(items)
	require.NoError(t, err)
	b, _, err := ComputeTotals(reversed)
	require.NoError(t, err)

	assert.Equal(t, a.Subtotal, b.Subtotal)
	assert.Equal(t, a.TaxAmount, b.TaxAmount)
	assert.Equal(t, a.TotalAmount, b.TotalAmount)
}

func TestComputeTotals_InvalidItemFailsWhole(t *testing.T) {
	_, _, err := ComputeTotals([]LineItem{
		{ProductID: 1, Quantity: 1, UnitPrice: 10},
		{ProductID: 2, Quantity: 0, UnitPrice: 10},
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestComputeTotals_Empty(t *testing.T) {
	totals, lines, err := ComputeTotals(nil)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Zero(t, totals.TotalAmount)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.35, Round2(2.346))
	assert.Equal(t, 2.34, Round2(2.344))
	assert.Equal(t, -2.35, Round2(-2.346))
	assert.Equal(t, 0.00, Round2(0.001))
}
