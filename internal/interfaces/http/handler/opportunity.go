package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/nexuscrm/backend/internal/application/sales"
)

// OpportunityHandler handles opportunity API endpoints
type OpportunityHandler struct {
	BaseHandler
	opportunityService *salesapp.OpportunityService
}

// NewOpportunityHandler creates a new OpportunityHandler
func NewOpportunityHandler(opportunityService *salesapp.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService}
}

// RegisterRoutes registers opportunity routes
func (h *OpportunityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	opportunities := rg.Group("/sales/opportunities")
	{
		opportunities.POST("", h.Create)
		opportunities.GET("", h.List)
		opportunities.GET("/:id", h.GetByID)
		opportunities.PUT("/:id", h.Update)
		opportunities.PATCH("/:id", h.Update)
		opportunities.DELETE("/:id", h.Delete)
	}
}

// Create creates a new opportunity
func (h *OpportunityHandler) Create(c *gin.Context) {
	var req salesapp.CreateOpportunityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	opportunity, err := h.opportunityService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, opportunity)
}

// GetByID retrieves an opportunity
func (h *OpportunityHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	opportunity, err := h.opportunityService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, opportunity)
}

// Update applies a partial update to an opportunity
func (h *OpportunityHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req salesapp.UpdateOpportunityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	opportunity, err := h.opportunityService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, opportunity)
}

// Delete removes an opportunity without derived offers
func (h *OpportunityHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.opportunityService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// List retrieves opportunities matching the query
func (h *OpportunityHandler) List(c *gin.Context) {
	var filter salesapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	clientID, ok := h.parseOptionalUUIDQuery(c, "client_id")
	if !ok {
		return
	}

	opportunities, total, err := h.opportunityService.List(c.Request.Context(), filter, clientID, c.Query("stage"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, opportunities, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}
