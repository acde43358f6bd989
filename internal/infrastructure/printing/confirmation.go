package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

// ConfirmationLine is one order line on the confirmation document
type ConfirmationLine struct {
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// ConfirmationData feeds the order confirmation template
type ConfirmationData struct {
	OrderID       string
	CreatedAt     time.Time
	FullName      string
	Email         string
	Phone         string
	Address       string
	PaymentMethod string
	Comment       string
	Lines         []ConfirmationLine
	Total         decimal.Decimal
}

const confirmationTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Order confirmation {{.OrderID}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 18px; margin-bottom: 2px; }
  .meta { color: #666; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th { text-align: left; border-bottom: 2px solid #222; padding: 6px 4px; }
  td { border-bottom: 1px solid #ddd; padding: 6px 4px; }
  td.num, th.num { text-align: right; }
  .total-row td { border-bottom: none; font-weight: bold; padding-top: 10px; }
  .section { margin-top: 16px; }
  .label { color: #666; }
</style>
</head>
<body>
  <h1>Order confirmation</h1>
  <div class="meta">Order {{.OrderID}} &middot; {{.CreatedAt.Format "02.01.2006 15:04"}}</div>

  <div class="section">
    <div><span class="label">Customer:</span> {{.FullName}}</div>
    <div><span class="label">Email:</span> {{.Email}}</div>
    {{if .Phone}}<div><span class="label">Phone:</span> {{.Phone}}</div>{{end}}
    <div><span class="label">Delivery address:</span> {{.Address}}</div>
    <div><span class="label">Payment method:</span> {{.PaymentMethod}}</div>
    {{if .Comment}}<div><span class="label">Comment:</span> {{.Comment}}</div>{{end}}
  </div>

  <table>
    <thead>
      <tr>
        <th>Product</th>
        <th class="num">Qty</th>
        <th class="num">Unit price</th>
        <th class="num">Amount</th>
      </tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr>
        <td>{{.Title}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{.UnitPrice.StringFixed 2}}</td>
        <td class="num">{{.LineTotal.StringFixed 2}}</td>
      </tr>
      {{end}}
      <tr class="total-row">
        <td colspan="3">Total</td>
        <td class="num">{{.Total.StringFixed 2}}</td>
      </tr>
    </tbody>
  </table>
</body>
</html>`

var confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationTemplate))

// BuildConfirmationHTML renders the order confirmation document body
func BuildConfirmationHTML(data *ConfirmationData) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render confirmation template: %w", err)
	}
	return buf.String(), nil
}
