package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/nexuscrm/backend/internal/application/sales"
	"github.com/nexuscrm/backend/internal/domain/sales"
	"github.com/nexuscrm/backend/internal/infrastructure/printing"
	"github.com/nexuscrm/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderableInvoice(t *testing.T) *sales.Invoice {
	t.Helper()
	date := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	invoice, err := sales.NewInvoice("INV-2025-042", uuid.New(), uuid.New(),
		date, date.AddDate(0, 1, 0), decimal.RequireFromString("245.00"))
	require.NoError(t, err)
	item, err := sales.NewInvoiceItem("", "Consulting", 2, decimal.NewFromInt(100), decimal.NewFromInt(22))
	require.NoError(t, err)
	invoice.ReplaceItems([]sales.InvoiceItem{*item})
	return invoice
}

func newInvoiceTestHandler(invoiceRepo *stubInvoiceRepo, clientRepo *stubClientRepo) *InvoiceHandler {
	renderer := printing.NewInvoiceRenderer(printing.CompanyInfo{Name: "Nexus Trading SRL"})
	service := salesapp.NewInvoiceService(invoiceRepo, &stubSaleOrderRepo{}, clientRepo, renderer)
	return NewInvoiceHandler(service)
}

func TestInvoiceHandler_DownloadPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)

	invoice := renderableInvoice(t)
	h := newInvoiceTestHandler(
		&stubInvoiceRepo{findByID: func(ctx context.Context, id uuid.UUID) (*sales.Invoice, error) {
			return invoice, nil
		}},
		&stubClientRepo{},
	)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/sales/invoices/"+invoice.ID.String()+"/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: invoice.ID.String()}}

	h.DownloadPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice-INV-2025-042.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, len(w.Body.Bytes()) > 4 && string(w.Body.Bytes()[:4]) == "%PDF")
}

func TestInvoiceHandler_DownloadPDF_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newInvoiceTestHandler(&stubInvoiceRepo{}, &stubClientRepo{})

	id := uuid.New()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/sales/invoices/"+id.String()+"/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.DownloadPDF(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestInvoiceHandler_DownloadPDF_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newInvoiceTestHandler(&stubInvoiceRepo{}, &stubClientRepo{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/sales/invoices/not-a-uuid/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.DownloadPDF(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
