package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/domain/catalogs/party"
	"allot/internal/infrastructure/http/v1/dto"
)

// PartyHandler handles HTTP requests for the party catalog.
type PartyHandler struct {
	*BaseHandler
	service *party.Service
}

// NewPartyHandler creates a new party handler.
func NewPartyHandler(base *BaseHandler, service *party.Service) *PartyHandler {
	return &PartyHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /catalog/parties
func (h *PartyHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePartyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	if err := h.service.Create(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromParty(p))
}

// Get handles GET /catalog/parties/:id
func (h *PartyHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	p, err := h.service.GetByID(ctx, partyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromParty(p))
}

// List handles GET /catalog/parties
func (h *PartyHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	parties, err := h.service.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.PartyResponse, len(parties))
	for i, p := range parties {
		items[i] = dto.FromParty(p)
	}

	h.OK(c, gin.H{"items": items})
}

// Update handles PUT /catalog/parties/:id
func (h *PartyHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdatePartyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(ctx, partyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(p)

	if err := h.service.Update(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromParty(p))
}

// Delete handles DELETE /catalog/parties/:id
func (h *PartyHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, partyID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers party catalog routes.
func (h *PartyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
