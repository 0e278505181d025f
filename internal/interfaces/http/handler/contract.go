package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/nexuscrm/backend/internal/application/sales"
)

// ContractHandler handles contract API endpoints
type ContractHandler struct {
	BaseHandler
	contractService *salesapp.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *salesapp.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// RegisterRoutes registers contract routes
func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/sales/contracts")
	{
		contracts.POST("", h.Create)
		contracts.GET("", h.List)
		contracts.GET("/:id", h.GetByID)
		contracts.PUT("/:id", h.Update)
		contracts.PATCH("/:id", h.Update)
		contracts.DELETE("/:id", h.Delete)
	}
}

// Create creates a new contract
func (h *ContractHandler) Create(c *gin.Context) {
	var req salesapp.CreateContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contract, err := h.contractService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, contract)
}

// GetByID retrieves a contract
func (h *ContractHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	contract, err := h.contractService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contract)
}

// Update applies a partial update to a contract
func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req salesapp.UpdateContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contract)
}

// Delete removes a contract
func (h *ContractHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.contractService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// List retrieves contracts matching the query
func (h *ContractHandler) List(c *gin.Context) {
	var filter salesapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	clientID, ok := h.parseOptionalUUIDQuery(c, "client_id")
	if !ok {
		return
	}

	contracts, total, err := h.contractService.List(c.Request.Context(), filter, clientID, c.Query("status"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, contracts, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}
