package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/domain/catalogs/ticket"
	"allot/internal/infrastructure/http/v1/dto"
)

// TicketHandler handles HTTP requests for the ticket catalog.
type TicketHandler struct {
	*BaseHandler
	service *ticket.Service
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(base *BaseHandler, service *ticket.Service) *TicketHandler {
	return &TicketHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /catalog/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateTicketRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t := req.ToEntity()
	if err := h.service.Create(ctx, t); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTicket(t))
}

// Get handles GET /catalog/tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	ticketID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	t, err := h.service.GetByID(ctx, ticketID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTicket(t))
}

// List handles GET /catalog/tickets
func (h *TicketHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	tickets, err := h.service.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.TicketResponse, len(tickets))
	for i, t := range tickets {
		items[i] = dto.FromTicket(t)
	}

	h.OK(c, gin.H{"items": items})
}

// Update handles PUT /catalog/tickets/:id
func (h *TicketHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	ticketID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateTicketRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.service.GetByID(ctx, ticketID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(t)

	if err := h.service.Update(ctx, t); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTicket(t))
}

// Delete handles DELETE /catalog/tickets/:id
func (h *TicketHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	ticketID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, ticketID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers ticket catalog routes.
func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
