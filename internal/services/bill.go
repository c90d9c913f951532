package services

import (
	"strings"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/diewo77/cafe-pos/internal/models"
)

const billTemplate = `-------- {{.CafeName}} --------
Order ID: {{.Order.ID}}
Customer Name: {{.Order.CustomerName}}
Table Number: {{.Order.TableNumber}}
Order Time: {{.Order.CreatedAt.Format "2006-01-02 15:04:05"}}
Payment Method: {{.Order.PaymentMethod}}
Status: {{.Order.Status}}

Items:
{{- range .Order.Lines}}
- {{.ItemName}} x{{.Quantity}} @ {{money .UnitPrice}} = {{money .LineTotal}}
{{- end}}

Subtotal (before GST): {{money .Order.Subtotal}}
CGST @ {{.CGSTRate}}%: {{money .Order.CGST}}
SGST @ {{.SGSTRate}}%: {{money .Order.SGST}}
Total Amount (including GST): {{money .Order.Total}}
------------------------------
`

var billTpl = template.Must(template.New("bill").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}).Parse(billTemplate))

// RenderBill formats a stored order as a printable text bill. All
// monetary values come from the stored totals; consistency with a
// recomputation from the lines is checked in tests, not here.
func (s *BillingService) RenderBill(order *models.Order) (string, error) {
	var b strings.Builder
	data := struct {
		CafeName string
		Order    *models.Order
		CGSTRate decimal.Decimal
		SGSTRate decimal.Decimal
	}{s.CafeName, order, s.CGSTRate, s.SGSTRate}
	if err := billTpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
