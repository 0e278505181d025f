package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/nexuscrm/backend/internal/application/sales"
)

// OfferHandler handles offer API endpoints
type OfferHandler struct {
	BaseHandler
	offerService *salesapp.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService *salesapp.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// RegisterRoutes registers offer routes
func (h *OfferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	offers := rg.Group("/sales/offers")
	{
		offers.POST("", h.Create)
		offers.GET("", h.List)
		offers.GET("/:id", h.GetByID)
		offers.PUT("/:id", h.Update)
		offers.PATCH("/:id", h.Update)
		offers.DELETE("/:id", h.Delete)
	}
}

// Create creates a new offer derived from an opportunity
func (h *OfferHandler) Create(c *gin.Context) {
	var req salesapp.CreateOfferRequest
	if !h.bindJSON(c, &req) {
		return
	}

	offer, err := h.offerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, offer)
}

// GetByID retrieves an offer with its items
func (h *OfferHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	offer, err := h.offerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, offer)
}

// Update applies a partial update to an offer, replacing its items when the
// request carries an item list
func (h *OfferHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req salesapp.UpdateOfferRequest
	if !h.bindJSON(c, &req) {
		return
	}

	offer, err := h.offerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, offer)
}

// Delete removes an offer and its items
func (h *OfferHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.offerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// List retrieves offers matching the query
func (h *OfferHandler) List(c *gin.Context) {
	var filter salesapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	clientID, ok := h.parseOptionalUUIDQuery(c, "client_id")
	if !ok {
		return
	}
	opportunityID, ok := h.parseOptionalUUIDQuery(c, "opportunity_id")
	if !ok {
		return
	}

	offers, total, err := h.offerService.List(c.Request.Context(), filter, clientID, opportunityID, c.Query("status"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, offers, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}
