package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/nexuscrm/backend/internal/application/sales"
)

// SaleOrderHandler handles sale order API endpoints
type SaleOrderHandler struct {
	BaseHandler
	orderService *salesapp.SaleOrderService
}

// NewSaleOrderHandler creates a new SaleOrderHandler
func NewSaleOrderHandler(orderService *salesapp.SaleOrderService) *SaleOrderHandler {
	return &SaleOrderHandler{orderService: orderService}
}

// RegisterRoutes registers sale order routes
func (h *SaleOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/sales/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.PUT("/:id", h.Update)
		orders.PATCH("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
	}
}

// Create creates a new sale order derived from an offer
func (h *SaleOrderHandler) Create(c *gin.Context) {
	var req salesapp.CreateSaleOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID retrieves a sale order
func (h *SaleOrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Update applies a partial update to a sale order
func (h *SaleOrderHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req salesapp.UpdateSaleOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes a sale order
func (h *SaleOrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// List retrieves sale orders matching the query
func (h *SaleOrderHandler) List(c *gin.Context) {
	var filter salesapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	clientID, ok := h.parseOptionalUUIDQuery(c, "client_id")
	if !ok {
		return
	}
	offerID, ok := h.parseOptionalUUIDQuery(c, "offer_id")
	if !ok {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter, clientID, offerID, c.Query("status"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}
