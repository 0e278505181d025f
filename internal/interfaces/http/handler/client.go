package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/nexuscrm/backend/internal/application/sales"
)

// ClientHandler handles client API endpoints
type ClientHandler struct {
	BaseHandler
	clientService  *salesapp.ClientService
	contactService *salesapp.ContactService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *salesapp.ClientService, contactService *salesapp.ContactService) *ClientHandler {
	return &ClientHandler{clientService: clientService, contactService: contactService}
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/sales/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.List)
		clients.GET("/:id", h.GetByID)
		clients.PUT("/:id", h.Update)
		clients.PATCH("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
		clients.GET("/:id/contacts", h.ListContacts)
	}
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
	var req salesapp.CreateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, client)
}

// GetByID retrieves a client with its contacts
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

// Update applies a partial update to a client
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req salesapp.UpdateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

// Delete removes a client and its contacts
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// List retrieves clients matching the query
func (h *ClientHandler) List(c *gin.Context) {
	var filter salesapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	assignedTo, ok := h.parseOptionalUUIDQuery(c, "assigned_to")
	if !ok {
		return
	}

	clients, total, err := h.clientService.List(c.Request.Context(), filter,
		c.Query("status"), c.Query("city"), assignedTo)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, clients, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// ListContacts retrieves all contacts of a client
func (h *ClientHandler) ListContacts(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.ListByClient(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contacts)
}

func pageOf(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func pageSizeOf(pageSize int) int {
	if pageSize < 1 {
		return 20
	}
	return pageSize
}
