package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/nexuscrm/backend/internal/application/sales"
)

// ContactHandler handles contact API endpoints
type ContactHandler struct {
	BaseHandler
	contactService *salesapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *salesapp.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// RegisterRoutes registers contact routes
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/sales/contacts")
	{
		contacts.POST("", h.Create)
		contacts.GET("", h.List)
		contacts.GET("/:id", h.GetByID)
		contacts.PUT("/:id", h.Update)
		contacts.PATCH("/:id", h.Update)
		contacts.DELETE("/:id", h.Delete)
	}
}

// Create creates a new contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req salesapp.CreateContactRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, contact)
}

// GetByID retrieves a contact
func (h *ContactHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	contact, err := h.contactService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contact)
}

// Update applies a partial update to a contact
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req salesapp.UpdateContactRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contact)
}

// Delete removes a contact
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// List retrieves contacts matching the query
func (h *ContactHandler) List(c *gin.Context) {
	var filter salesapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	clientID, ok := h.parseOptionalUUIDQuery(c, "client_id")
	if !ok {
		return
	}

	contacts, total, err := h.contactService.List(c.Request.Context(), filter, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, contacts, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}
