package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOrderTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []PricedItem
		discount     float64
		discountType string
		wantTotal    float64
		wantDiscount float64
		wantFinal    float64
	}{
		{
			name:         "percentage discount",
			items:        []PricedItem{{Price: 10, Quantity: 2}, {Price: 5, Quantity: 1}},
			discount:     10,
			discountType: "percentage",
			wantTotal:    25,
			wantDiscount: 2.5,
			wantFinal:    22.5,
		},
		{
			name:         "flat amount discount",
			items:        []PricedItem{{Price: 10, Quantity: 2}, {Price: 5, Quantity: 1}},
			discount:     5,
			discountType: "amount",
			wantTotal:    25,
			wantDiscount: 5,
			wantFinal:    20,
		},
		{
			name:         "no discount",
			items:        []PricedItem{{Price: 3.5, Quantity: 3}},
			discount:     0,
			discountType: "amount",
			wantTotal:    10.5,
			wantDiscount: 0,
			wantFinal:    10.5,
		},
		{
			name:         "discount exceeding total floors final at zero",
			items:        []PricedItem{{Price: 4, Quantity: 1}},
			discount:     10,
			discountType: "amount",
			wantTotal:    4,
			wantDiscount: 10,
			wantFinal:    0,
		},
		{
			name:         "hundred percent discount",
			items:        []PricedItem{{Price: 12.3, Quantity: 2}},
			discount:     100,
			discountType: "percentage",
			wantTotal:    24.6,
			wantDiscount: 24.6,
			wantFinal:    0,
		},
		{
			name:         "empty item list",
			items:        nil,
			discount:     5,
			discountType: "amount",
			wantTotal:    0,
			wantDiscount: 5,
			wantFinal:    0,
		},
		{
			name:         "float prices stay exact",
			items:        []PricedItem{{Price: 0.1, Quantity: 3}},
			discount:     0,
			discountType: "amount",
			wantTotal:    0.3,
			wantDiscount: 0,
			wantFinal:    0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeOrderTotals(tt.items, tt.discount, tt.discountType)
			assert.InDelta(t, tt.wantTotal, got.TotalAmount, 1e-9)
			assert.InDelta(t, tt.wantDiscount, got.DiscountAmount, 1e-9)
			assert.InDelta(t, tt.wantFinal, got.FinalAmount, 1e-9)
		})
	}
}

func TestLineSubtotal(t *testing.T) {
	assert.InDelta(t, 20, LineSubtotal(10, 2), 1e-9)
	assert.InDelta(t, 0.3, LineSubtotal(0.1, 3), 1e-9)
	assert.InDelta(t, 0, LineSubtotal(9.99, 0), 1e-9)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "22.50", FormatMoney(22.5))
	assert.Equal(t, "0.00", FormatMoney(0))
	assert.Equal(t, "1234.00", FormatMoney(1234))
	assert.Equal(t, "0.30", FormatMoney(0.3))
}
