package billing

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fogleman/gg"
	"github.com/zaikahub/zaika-api/models"
	"github.com/zaikahub/zaika-api/utils"
	"golang.org/x/image/font/basicfont"
)

// Business is the fixed header identity printed on every bill. Values come
// from the environment at boot, not from the order.
type Business struct {
	Name     string
	Tagline  string
	Phone    string
	Address  string
	Currency string
}

const (
	// 80mm thermal receipt width at 203dpi.
	billWidth  = 576
	margin     = 24.0
	lineHeight = 18.0
)

type billLine struct {
	left   string
	right  string
	indent float64
	bold   bool
	rule   bool
}

// layoutLines flattens the bill into printable lines: header, order meta,
// customer block, itemized table (with nested bundle contents for Deals),
// totals and footer. Both the PNG and PDF renderers consume this so the two
// exports can never disagree.
func layoutLines(order *models.Order, biz Business) []billLine {
	cur := biz.Currency
	if cur == "" {
		cur = "Rs"
	}

	lines := []billLine{
		{left: biz.Name, bold: true},
	}
	if biz.Tagline != "" {
		lines = append(lines, billLine{left: biz.Tagline})
	}
	if biz.Address != "" {
		lines = append(lines, billLine{left: biz.Address})
	}
	if biz.Phone != "" {
		lines = append(lines, billLine{left: "Ph: " + biz.Phone})
	}
	lines = append(lines, billLine{rule: true})

	if order.Priority == models.PriorityHigh {
		lines = append(lines,
			billLine{left: "*** HIGH PRIORITY ORDER ***", bold: true},
			billLine{rule: true},
		)
	}

	lines = append(lines,
		billLine{left: "Bill No: " + order.OrderNumber},
		billLine{left: "Date: " + order.CreatedAt.Format("02 Jan 2006 15:04")},
	)
	if order.DeliveryDate != nil {
		lines = append(lines, billLine{left: "Delivery: " + order.DeliveryDate.Format("02 Jan 2006")})
	}
	lines = append(lines, billLine{rule: true})

	lines = append(lines,
		billLine{left: "Customer: " + order.CustomerName},
		billLine{left: "WhatsApp: " + order.CustomerWhatsapp},
		billLine{left: "Address: " + order.CustomerAddress},
	)
	if order.CustomerNotes != "" {
		lines = append(lines, billLine{left: "Notes: " + order.CustomerNotes})
	}
	lines = append(lines, billLine{rule: true})

	lines = append(lines, billLine{left: "#  Item                Price  Qty", right: "Amount", bold: true})
	for i, item := range order.Items {
		lines = append(lines, billLine{
			left:  fmt.Sprintf("%-2d %s  %s x%d", i+1, item.Name, utils.FormatMoney(item.Price), item.Quantity),
			right: utils.FormatMoney(item.Subtotal),
		})
		for _, inc := range bundleContents(item) {
			lines = append(lines, billLine{left: "- " + inc, indent: 16})
		}
	}
	lines = append(lines, billLine{rule: true})

	lines = append(lines, billLine{left: "Subtotal", right: cur + " " + utils.FormatMoney(order.TotalAmount)})
	if order.Discount > 0 {
		discountAmount := utils.ComputeOrderTotals(pricedItems(order), order.Discount, order.DiscountType).DiscountAmount
		lines = append(lines, billLine{
			left:  "Discount (" + discountLabel(order, cur) + ")",
			right: "-" + cur + " " + utils.FormatMoney(discountAmount),
		})
	}
	lines = append(lines, billLine{
		left:  "TOTAL",
		right: cur + " " + utils.FormatMoney(order.FinalAmount),
		bold:  true,
	})
	lines = append(lines, billLine{rule: true})
	lines = append(lines, billLine{left: "Thank you for your order!"})

	return lines
}

// bundleContents decodes the frozen bundle list for Deal items; anything else
// has no nested lines.
func bundleContents(item models.OrderItem) []string {
	if item.Category != models.DealCategory || len(item.BundleItems) == 0 {
		return nil
	}
	var contents []string
	if err := json.Unmarshal(item.BundleItems, &contents); err != nil {
		return nil
	}
	return contents
}

func pricedItems(order *models.Order) []utils.PricedItem {
	items := make([]utils.PricedItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, utils.PricedItem{Price: it.Price, Quantity: it.Quantity})
	}
	return items
}

func discountLabel(order *models.Order, currency string) string {
	if order.DiscountType == models.DiscountTypePercentage {
		return utils.FormatMoney(order.Discount) + "%"
	}
	return currency + " " + utils.FormatMoney(order.Discount)
}

// RenderPNG rasterizes the bill to a PNG byte stream suitable for upload and
// WhatsApp attachment. The output is deterministic for a given order
// snapshot.
func RenderPNG(order *models.Order, biz Business) ([]byte, error) {
	lines := layoutLines(order, biz)

	height := int(margin*2 + lineHeight*float64(len(lines)))
	dc := gg.NewContext(billWidth, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(basicfont.Face7x13)

	y := margin + lineHeight/2
	for _, line := range lines {
		if line.rule {
			dc.DrawLine(margin, y, billWidth-margin, y)
			dc.SetLineWidth(1)
			dc.Stroke()
			y += lineHeight
			continue
		}
		dc.DrawString(line.left, margin+line.indent, y)
		if line.bold {
			// basicfont has a single weight; fake bold with an offset pass.
			dc.DrawString(line.left, margin+line.indent+1, y)
		}
		if line.right != "" {
			w, _ := dc.MeasureString(line.right)
			dc.DrawString(line.right, billWidth-margin-w, y)
		}
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, utils.NewRenderError(err)
	}
	return buf.Bytes(), nil
}
