// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gamevault/game-library-backend/internal/domain/order"
)

var receiptTmpl = template.Must(template.New("receipt").Parse(receiptTemplate))

// Service renders order receipts
type Service struct {
	company CompanyInfo
	now     func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg config.ReceiptConfig) *Service {
	return &Service{
		company: CompanyInfo{
			Name:    cfg.CompanyName,
			Address: cfg.CompanyAddress,
			Email:   cfg.CompanyEmail,
			Website: cfg.CompanyWebsite,
		},
		now: time.Now,
	}
}

// ReceiptData is passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string
	IssuedAt      string
	PurchasedAt   string
	Customer      string
	Order         *order.Order
	Company       CompanyInfo
}

// CompanyInfo is the seller block printed on receipts
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
	Website string
}

// RenderReceiptHTML renders the receipt page for an order
func (s *Service) RenderReceiptHTML(o *order.Order, customer string) (string, error) {
	data := ReceiptData{
		ReceiptNumber: "RCT-" + o.OrderNumber,
		IssuedAt:      s.now().Format("January 2, 2006"),
		PurchasedAt:   o.CreatedAt.Format("January 2, 2006 15:04 MST"),
		Customer:      customer,
		Order:         o,
		Company:       s.company,
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GenerateReceipt converts the receipt page to PDF with wkhtmltopdf
func (s *Service) GenerateReceipt(o *order.Order, customer string) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderReceiptHTML(o, customer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 24px; color: #222; }
        .header { display: flex; justify-content: space-between; border-bottom: 2px solid #4f46e5; padding-bottom: 12px; }
        .company { font-size: 22px; font-weight: bold; color: #4f46e5; }
        .muted { color: #666; font-size: 12px; }
        table { width: 100%; border-collapse: collapse; margin-top: 24px; }
        th, td { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
        th { background: #f3f4f6; }
        .price { text-align: right; }
        .total td { font-weight: bold; border-top: 2px solid #222; }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <div class="company">{{.Company.Name}}</div>
            {{if .Company.Address}}<div class="muted">{{.Company.Address}}</div>{{end}}
            <div class="muted">{{.Company.Email}} · {{.Company.Website}}</div>
        </div>
        <div>
            <div><strong>Receipt</strong> {{.ReceiptNumber}}</div>
            <div class="muted">Order {{.Order.OrderNumber}}</div>
            <div class="muted">Purchased {{.PurchasedAt}}</div>
            <div class="muted">Issued {{.IssuedAt}}</div>
        </div>
    </div>

    <p>Billed to <strong>{{.Customer}}</strong> · Paid by {{.Order.PaymentMethod}}</p>

    <table>
        <thead>
            <tr><th>#</th><th>Game</th><th class="price">Price</th></tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr><td>{{.Position}}</td><td>{{.GameTitle}}</td><td class="price">${{.Price.StringFixed 2}}</td></tr>
            {{end}}
            <tr class="total"><td></td><td>Total</td><td class="price">${{.Order.TotalAmount.StringFixed 2}}</td></tr>
        </tbody>
    </table>

    <p class="muted">Games are added to your library immediately after purchase.</p>
</body>
</html>
`
