package billing

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
	"github.com/zaikahub/zaika-api/models"
	"github.com/zaikahub/zaika-api/utils"
)

// RenderPDF exports the bill as a paginated A4 document. Long orders break
// across pages automatically; the layout mirrors RenderPNG line for line.
func RenderPDF(order *models.Order, biz Business) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	for _, line := range layoutLines(order, biz) {
		if line.rule {
			x, y := pdf.GetXY()
			pdf.Line(15, y+2, 195, y+2)
			pdf.SetXY(x, y+6)
			continue
		}

		style := ""
		if line.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)

		pdf.SetX(15 + line.indent/4)
		if line.right != "" {
			pdf.CellFormat(130, 6, line.left, "", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, line.right, "", 1, "R", false, 0, "")
		} else {
			pdf.CellFormat(180, 6, line.left, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, utils.NewRenderError(err)
	}
	return buf.Bytes(), nil
}

// Caption builds the WhatsApp message text that accompanies the bill image.
func Caption(order *models.Order, biz Business) string {
	cur := biz.Currency
	if cur == "" {
		cur = "Rs"
	}
	name := biz.Name
	if name == "" {
		name = "our kitchen"
	}
	return "Order " + order.OrderNumber + " | Total: " + cur + " " +
		utils.FormatMoney(order.FinalAmount) + "\nThank you for ordering with " + name + "!"
}
