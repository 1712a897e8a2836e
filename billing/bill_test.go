package billing

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaikahub/zaika-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var testBusiness = Business{
	Name:     "Zaika Catering",
	Tagline:  "Home style food, delivered",
	Phone:    "+92 300 1234567",
	Address:  "Shop 4, Liberty Market",
	Currency: "Rs",
}

func sampleOrder() *models.Order {
	delivery := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
	return &models.Order{
		Model:            gorm.Model{ID: 7, CreatedAt: time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC)},
		OrderNumber:      "ORD-20250901-A1B2C3",
		CustomerName:     "Ayesha Khan",
		CustomerWhatsapp: "+923001112233",
		CustomerAddress:  "House 12, Street 5, DHA",
		Items: []models.OrderItem{
			{Name: "Chicken Biryani", Category: "Rice", Price: 10, Quantity: 2, Subtotal: 20},
			{Name: "Raita", Category: "Sides", Price: 5, Quantity: 1, Subtotal: 5},
		},
		Discount:     10,
		DiscountType: models.DiscountTypePercentage,
		TotalAmount:  25,
		FinalAmount:  22.5,
		Status:       models.StatusPending,
		Priority:     models.PriorityMedium,
		DeliveryDate: &delivery,
	}
}

func TestRenderPNGProducesDecodableImage(t *testing.T) {
	data, err := RenderPNG(sampleOrder(), testBusiness)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 576, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 200)
}

func TestRenderPNGIsDeterministic(t *testing.T) {
	order := sampleOrder()
	first, err := RenderPNG(order, testBusiness)
	require.NoError(t, err)
	second, err := RenderPNG(order, testBusiness)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLayoutLinesDiscountFormatting(t *testing.T) {
	tests := []struct {
		name         string
		discount     float64
		discountType string
		wantLine     string
		wantAmount   string
	}{
		{
			name:         "percentage discount shows percent suffix",
			discount:     10,
			discountType: models.DiscountTypePercentage,
			wantLine:     "Discount (10.00%)",
			wantAmount:   "-Rs 2.50",
		},
		{
			name:         "flat discount shows currency symbol",
			discount:     5,
			discountType: models.DiscountTypeAmount,
			wantLine:     "Discount (Rs 5.00)",
			wantAmount:   "-Rs 5.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := sampleOrder()
			order.Discount = tt.discount
			order.DiscountType = tt.discountType

			var found *billLine
			for _, line := range layoutLines(order, testBusiness) {
				if line.left == tt.wantLine {
					l := line
					found = &l
				}
			}
			require.NotNil(t, found, "discount line %q missing", tt.wantLine)
			assert.Equal(t, tt.wantAmount, found.right)
		})
	}
}

func TestLayoutLinesOmitsZeroDiscount(t *testing.T) {
	order := sampleOrder()
	order.Discount = 0
	order.FinalAmount = order.TotalAmount

	for _, line := range layoutLines(order, testBusiness) {
		assert.NotContains(t, line.left, "Discount")
	}
}

func TestLayoutLinesPriorityBanner(t *testing.T) {
	order := sampleOrder()
	order.Priority = models.PriorityHigh

	banner := false
	for _, line := range layoutLines(order, testBusiness) {
		if line.left == "*** HIGH PRIORITY ORDER ***" {
			banner = true
		}
	}
	assert.True(t, banner)

	order.Priority = models.PriorityLow
	for _, line := range layoutLines(order, testBusiness) {
		assert.NotEqual(t, "*** HIGH PRIORITY ORDER ***", line.left)
	}
}

func TestLayoutLinesDealBundleContents(t *testing.T) {
	order := sampleOrder()
	order.Items = append(order.Items, models.OrderItem{
		Name:        "Family Deal",
		Category:    models.DealCategory,
		Price:       30,
		Quantity:    1,
		Subtotal:    30,
		BundleItems: datatypes.JSON([]byte(`["2x Biryani","4x Naan","1.5L Drink"]`)),
	})

	var nested []string
	for _, line := range layoutLines(order, testBusiness) {
		if line.indent > 0 {
			nested = append(nested, line.left)
		}
	}
	assert.Equal(t, []string{"- 2x Biryani", "- 4x Naan", "- 1.5L Drink"}, nested)
}

func TestLayoutLinesBundleIgnoredOutsideDeals(t *testing.T) {
	order := sampleOrder()
	order.Items[0].BundleItems = datatypes.JSON([]byte(`["should","not","show"]`))

	for _, line := range layoutLines(order, testBusiness) {
		assert.Zero(t, line.indent)
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(sampleOrder(), testBusiness)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderPDFPaginatesLongOrders(t *testing.T) {
	order := sampleOrder()
	for i := 0; i < 120; i++ {
		order.Items = append(order.Items, models.OrderItem{
			Name: "Samosa", Category: "Snacks", Price: 1, Quantity: 1, Subtotal: 1,
		})
	}

	short, err := RenderPDF(sampleOrder(), testBusiness)
	require.NoError(t, err)
	long, err := RenderPDF(order, testBusiness)
	require.NoError(t, err)

	// The long order spills onto extra pages, so extra page objects appear.
	pages := func(b []byte) int { return bytes.Count(b, []byte("/Type /Page")) }
	assert.Greater(t, pages(long), pages(short))
}

func TestCaption(t *testing.T) {
	got := Caption(sampleOrder(), testBusiness)
	assert.Contains(t, got, "ORD-20250901-A1B2C3")
	assert.Contains(t, got, "Rs 22.50")
	assert.Contains(t, got, "Thank you")
}
