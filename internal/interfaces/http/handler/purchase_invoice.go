package handler

import (
	"github.com/gin-gonic/gin"
	purchaseapp "github.com/nexuscrm/backend/internal/application/purchase"
)

// PurchaseInvoiceHandler handles purchase invoice API endpoints
type PurchaseInvoiceHandler struct {
	BaseHandler
	invoiceService *purchaseapp.PurchaseInvoiceService
}

// NewPurchaseInvoiceHandler creates a new PurchaseInvoiceHandler
func NewPurchaseInvoiceHandler(invoiceService *purchaseapp.PurchaseInvoiceService) *PurchaseInvoiceHandler {
	return &PurchaseInvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers purchase invoice routes
func (h *PurchaseInvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/purchase/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.GetByID)
		invoices.PUT("/:id", h.Update)
		invoices.PATCH("/:id", h.Update)
		invoices.DELETE("/:id", h.Delete)
	}
}

// Create records a new supplier invoice
func (h *PurchaseInvoiceHandler) Create(c *gin.Context) {
	var req purchaseapp.CreatePurchaseInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, invoice)
}

// GetByID retrieves a purchase invoice
func (h *PurchaseInvoiceHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Update applies a partial update to a purchase invoice
func (h *PurchaseInvoiceHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req purchaseapp.UpdatePurchaseInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Delete removes a purchase invoice
func (h *PurchaseInvoiceHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// List retrieves purchase invoices matching the query
func (h *PurchaseInvoiceHandler) List(c *gin.Context) {
	var filter purchaseapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	supplierID, ok := h.parseOptionalUUIDQuery(c, "supplier_id")
	if !ok {
		return
	}
	orderID, ok := h.parseOptionalUUIDQuery(c, "order_id")
	if !ok {
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter, supplierID, orderID, c.Query("status"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, invoices, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}
