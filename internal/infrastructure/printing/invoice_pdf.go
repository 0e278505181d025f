package printing

import (
	"bytes"
	"fmt"

	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/phpdave11/gofpdf"
)

// CompanyInfo is the issuer block printed on every invoice
type CompanyInfo struct {
	Name      string
	Address   string
	City      string
	VATNumber string
	Email     string
	Phone     string
}

// Column layout of the line-item table, in millimeters. The sheet is A4
// portrait with 15mm margins, leaving 180mm of printable width.
const (
	colDescription = 75.0
	colQuantity    = 20.0
	colUnitPrice   = 30.0
	colTaxRate     = 20.0
	colLineTotal   = 35.0
	lineHeight     = 7.0
)

// InvoiceRenderer renders invoices to paginated PDF documents with a fixed
// layout: issuer and client blocks, the numbered line table and the totals
// footer. Long invoices flow onto continuation pages with the table header
// repeated.
type InvoiceRenderer struct {
	company CompanyInfo
}

// NewInvoiceRenderer creates a new InvoiceRenderer for the given issuer
func NewInvoiceRenderer(company CompanyInfo) *InvoiceRenderer {
	return &InvoiceRenderer{company: company}
}

// Render produces the PDF document for an invoice. The client provides the
// billing block; items are printed in stored line order.
func (r *InvoiceRenderer) Render(invoice *sales.Invoice, client *sales.Client) ([]byte, error) {
	if invoice == nil {
		return nil, fmt.Errorf("cannot render a nil invoice")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("%s  -  Page %d/{nb}", invoice.Number, pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	r.renderHeader(pdf, invoice, client)
	r.renderItemTable(pdf, invoice)
	r.renderTotals(pdf, invoice)
	r.renderTerms(pdf, invoice)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", invoice.Number, err)
	}
	return buf.Bytes(), nil
}

func (r *InvoiceRenderer) renderHeader(pdf *gofpdf.Fpdf, invoice *sales.Invoice, client *sales.Client) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(110, 8, r.company.Name, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(70, 8, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{r.company.Address, r.company.City, r.company.VATNumber, r.company.Email, r.company.Phone} {
		if line == "" {
			continue
		}
		pdf.CellFormat(110, 5, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(110, 6, "Bill to", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, "Number", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(35, 6, invoice.Number, "", 1, "R", false, 0, "")

	clientLines := []string{}
	if client != nil {
		clientLines = append(clientLines, client.Name)
		if client.Address != "" {
			clientLines = append(clientLines, client.Address)
		}
		if client.City != "" {
			clientLines = append(clientLines, client.City)
		}
		if client.VATNumber != "" {
			clientLines = append(clientLines, "VAT "+client.VATNumber)
		}
	}

	meta := [][2]string{
		{"Date", invoice.Date.Format("2006-01-02")},
		{"Due date", invoice.DueDate.Format("2006-01-02")},
		{"Status", invoice.Status.String()},
	}

	rows := len(clientLines)
	if len(meta) > rows {
		rows = len(meta)
	}
	for i := 0; i < rows; i++ {
		clientLine := ""
		if i < len(clientLines) {
			clientLine = clientLines[i]
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(110, 6, clientLine, "", 0, "L", false, 0, "")
		if i < len(meta) {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(35, 6, meta[i][0], "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(35, 6, meta[i][1], "", 1, "R", false, 0, "")
		} else {
			pdf.Ln(-1)
		}
	}
	pdf.Ln(6)
}

func (r *InvoiceRenderer) renderItemTable(pdf *gofpdf.Fpdf, invoice *sales.Invoice) {
	tableHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(colDescription, lineHeight, "Description", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colQuantity, lineHeight, "Qty", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colUnitPrice, lineHeight, "Unit price", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colTaxRate, lineHeight, "Tax %", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colLineTotal, lineHeight, "Amount", "1", 1, "R", true, 0, "")
	}
	tableHeader()

	pdf.SetFont("Helvetica", "", 9)
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()

	for i := range invoice.Items {
		item := &invoice.Items[i]

		// Start a continuation page before the row would cross the break
		// line, so the row and its border stay together.
		if pdf.GetY()+lineHeight > pageHeight-bottomMargin-10 {
			pdf.AddPage()
			tableHeader()
			pdf.SetFont("Helvetica", "", 9)
		}

		description := item.Description
		if item.Product != "" {
			description = item.Product + " - " + item.Description
		}

		pdf.CellFormat(colDescription, lineHeight, description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQuantity, lineHeight, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colUnitPrice, lineHeight, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTaxRate, lineHeight, item.TaxRate.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colLineTotal, lineHeight, item.LineTotal().StringFixed(2), "1", 1, "R", false, 0, "")
	}
}

func (r *InvoiceRenderer) renderTotals(pdf *gofpdf.Fpdf, invoice *sales.Invoice) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colDescription+colQuantity+colUnitPrice+colTaxRate, lineHeight,
		"Total due", "", 0, "R", false, 0, "")
	pdf.CellFormat(colLineTotal, lineHeight, invoice.TotalAmount.StringFixed(2), "1", 1, "R", false, 0, "")
}

func (r *InvoiceRenderer) renderTerms(pdf *gofpdf.Fpdf, invoice *sales.Invoice) {
	if invoice.PaymentMethod == "" && invoice.TermsAndConditions == "" {
		return
	}

	pdf.Ln(6)
	if invoice.PaymentMethod != "" {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(35, 5, "Payment", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, invoice.PaymentMethod, "", 1, "L", false, 0, "")
	}
	if invoice.TermsAndConditions != "" {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 5, "Terms and conditions", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(0, 4, invoice.TermsAndConditions, "", "L", false)
	}
}
