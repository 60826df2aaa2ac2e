// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/biloop252/suuqsade-backend/internal/config"
	"github.com/biloop252/suuqsade-backend/internal/domain/order"
)

// Service handles invoice PDF generation
type Service struct {
	config   *config.Config
	template *template.Template
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	tmpl := template.Must(template.New("invoice").Funcs(template.FuncMap{
		"money": func(cents int64) string {
			return fmt.Sprintf("$%.2f", float64(cents)/100)
		},
	}).Parse(invoiceTemplate))

	return &Service{
		config:   cfg,
		template: tmpl,
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	CompanyName   string
	Order         *order.Order
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", o.OrderNumber),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		CompanyName:   s.config.App.Name,
		Order:         o,
	}

	var html bytes.Buffer
	if err := s.template.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render invoice template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html.Bytes()))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        h1 { font-size: 22px; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
        th { background: #f5f5f5; }
        .totals { margin-top: 20px; width: 40%; margin-left: auto; }
        .totals td { border: none; padding: 4px 8px; }
        .grand-total { font-weight: bold; border-top: 2px solid #333; }
    </style>
</head>
<body>
    <h1>{{.CompanyName}}</h1>
    <p>
        Invoice <strong>{{.InvoiceNumber}}</strong><br>
        Date: {{.InvoiceDate}}<br>
        Order: {{.Order.OrderNumber}}
    </p>
    <p>
        Ship to:<br>
        {{.Order.ShippingAddressLine1}}<br>
        {{if .Order.ShippingAddressLine2}}{{.Order.ShippingAddressLine2}}<br>{{end}}
        {{.Order.ShippingCity}}{{if .Order.ShippingState}}, {{.Order.ShippingState}}{{end}} {{.Order.ShippingPostalCode}}<br>
        {{.Order.ShippingCountry}}
    </p>
    <table>
        <tr><th>Item</th><th>SKU</th><th>Qty</th><th>Unit Price</th><th>Discount</th><th>Total</th></tr>
        {{range .Order.Items}}
        <tr>
            <td>{{.ProductName}}</td>
            <td>{{.SKU}}</td>
            <td>{{.Quantity}}</td>
            <td>{{money .UnitPrice}}</td>
            <td>{{money .DiscountAmount}}</td>
            <td>{{money .TotalPrice}}</td>
        </tr>
        {{end}}
    </table>
    <table class="totals">
        <tr><td>Subtotal</td><td>{{money .Order.SubtotalAmount}}</td></tr>
        {{if .Order.DiscountAmount}}<tr><td>Coupon discount</td><td>-{{money .Order.DiscountAmount}}</td></tr>{{end}}
        {{if .Order.AutomaticDiscountAmount}}<tr><td>Order discount</td><td>-{{money .Order.AutomaticDiscountAmount}}</td></tr>{{end}}
        <tr><td>Tax</td><td>{{money .Order.TaxAmount}}</td></tr>
        <tr><td>Shipping</td><td>{{money .Order.ShippingAmount}}</td></tr>
        <tr class="grand-total"><td>Total</td><td>{{money .Order.TotalAmount}}</td></tr>
    </table>
</body>
</html>
`
