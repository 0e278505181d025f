package printing

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer() *InvoiceRenderer {
	return NewInvoiceRenderer(CompanyInfo{
		Name:      "Nexus Trading SRL",
		Address:   "Via Roma 1",
		City:      "20121 Milano",
		VATNumber: "IT01234567890",
		Email:     "billing@nexus.example",
	})
}

func testInvoice(t *testing.T, lines int) *sales.Invoice {
	t.Helper()
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	invoice, err := sales.NewInvoice("INV-2025-017", uuid.New(), uuid.New(),
		date, date.AddDate(0, 0, 30), decimal.RequireFromString("1280.00"))
	require.NoError(t, err)
	invoice.PaymentMethod = "Bank transfer, IBAN IT60X0542811101000000123456"
	invoice.TermsAndConditions = "Payment within 30 days of the invoice date."

	items := make([]sales.InvoiceItem, 0, lines)
	for i := 0; i < lines; i++ {
		item, err := sales.NewInvoiceItem(fmt.Sprintf("SKU-%03d", i), "Consulting hours", 8,
			decimal.RequireFromString("160.00"), decimal.RequireFromString("22.00"))
		require.NoError(t, err)
		items = append(items, *item)
	}
	invoice.ReplaceItems(items)
	return invoice
}

func testClient(t *testing.T) *sales.Client {
	t.Helper()
	client, err := sales.NewClient("Acme GmbH")
	require.NoError(t, err)
	client.Address = "Hauptstrasse 5"
	client.City = "Berlin"
	client.VATNumber = "DE129273398"
	return client
}

func TestInvoiceRenderer_Render(t *testing.T) {
	renderer := testRenderer()

	data, err := renderer.Render(testInvoice(t, 3), testClient(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, len(data), 1000)
}

func TestInvoiceRenderer_Render_PaginatesLongInvoices(t *testing.T) {
	renderer := testRenderer()

	short, err := renderer.Render(testInvoice(t, 1), testClient(t))
	require.NoError(t, err)

	long, err := renderer.Render(testInvoice(t, 120), testClient(t))
	require.NoError(t, err)

	// A 120-line invoice cannot fit one A4 page; the document must carry
	// more page objects than the single-line one.
	assert.Greater(t, bytes.Count(long, []byte("/Type /Page")), bytes.Count(short, []byte("/Type /Page")))
}

func TestInvoiceRenderer_Render_NoClientBlock(t *testing.T) {
	renderer := testRenderer()

	data, err := renderer.Render(testInvoice(t, 2), nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestInvoiceRenderer_Render_NilInvoice(t *testing.T) {
	_, err := testRenderer().Render(nil, nil)
	assert.Error(t, err)
}
