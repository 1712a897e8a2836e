package utils

import "github.com/shopspring/decimal"

// OrderTotals is the single authoritative money computation for an order.
// Both persistence and bill rendering go through it so the numbers can never
// drift. Values are computed with decimals and handed back as float64 because
// the store's numeric columns are floating point.
type OrderTotals struct {
	TotalAmount    float64
	DiscountAmount float64
	FinalAmount    float64
}

type PricedItem struct {
	Price    float64
	Quantity int
}

// LineSubtotal recomputes price * quantity for a single order item. Client
// supplied subtotals are never trusted.
func LineSubtotal(price float64, quantity int) float64 {
	sub := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
	f, _ := sub.Float64()
	return f
}

// ComputeOrderTotals sums the item subtotals and applies the discount.
// discountType is "percentage" or "amount"; the final amount is floored at
// zero.
func ComputeOrderTotals(items []PricedItem, discount float64, discountType string) OrderTotals {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discountAmount := decimal.NewFromFloat(discount)
	if discountType == "percentage" {
		discountAmount = total.Mul(decimal.NewFromFloat(discount)).Div(decimal.NewFromInt(100))
	}

	final := total.Sub(discountAmount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	totalF, _ := total.Float64()
	discountF, _ := discountAmount.Float64()
	finalF, _ := final.Float64()
	return OrderTotals{
		TotalAmount:    totalF,
		DiscountAmount: discountF,
		FinalAmount:    finalF,
	}
}

// FormatMoney renders a currency value with exactly two decimal places for
// bills and captions.
func FormatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
