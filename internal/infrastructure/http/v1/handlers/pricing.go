package handlers

import (
	"github.com/gin-gonic/gin"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/core/types"
	"allot/internal/domain/pricing"
	"allot/internal/infrastructure/http/v1/dto"
)

// PricingHandler handles HTTP requests for agreed rates.
type PricingHandler struct {
	*BaseHandler
	service *pricing.Service
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(base *BaseHandler, service *pricing.Service) *PricingHandler {
	return &PricingHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ListDistributorPrices handles GET /pricing/distributors/:id
func (h *PricingHandler) ListDistributorPrices(c *gin.Context) {
	ctx := c.Request.Context()

	distributorID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	prices, err := h.service.ListDistributorPrices(ctx, distributorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": prices})
}

// SetDistributorPrice handles PUT /pricing/distributors/:id
func (h *PricingHandler) SetDistributorPrice(c *gin.Context) {
	ctx := c.Request.Context()

	distributorID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticketID, err := id.Parse(req.TicketID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid ticket id"))
		return
	}

	if err := h.service.SetDistributorPrice(ctx, distributorID, ticketID, req.Rate); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "price saved")
}

// GetDistributorRate handles GET /pricing/distributors/:id/tickets/:ticketId
//
// Returns the agreed purchase rate, or zero when no price was ever set
// (the entry form pre-fills with it either way).
func (h *PricingHandler) GetDistributorRate(c *gin.Context) {
	ctx := c.Request.Context()

	distributorID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	ticketID, err := id.Parse(c.Param("ticketId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid ticket id"))
		return
	}

	rate, err := h.service.GetPurchaseRate(ctx, distributorID, ticketID)
	if err != nil {
		if apperror.IsNotFound(err) {
			h.OK(c, gin.H{"rate": types.Zero()})
			return
		}
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"rate": rate})
}

// ListPartyPrices handles GET /pricing/parties/:id
func (h *PricingHandler) ListPartyPrices(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	prices, err := h.service.ListPartyPrices(ctx, partyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": prices})
}

// SetPartyPrice handles PUT /pricing/parties/:id
func (h *PricingHandler) SetPartyPrice(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticketID, err := id.Parse(req.TicketID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid ticket id"))
		return
	}

	if err := h.service.SetPartyPrice(ctx, partyID, ticketID, req.Rate); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "price saved")
}

// GetPartyRate handles GET /pricing/parties/:id/tickets/:ticketId
func (h *PricingHandler) GetPartyRate(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	ticketID, err := id.Parse(c.Param("ticketId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid ticket id"))
		return
	}

	rate, err := h.service.GetSaleRate(ctx, partyID, ticketID)
	if err != nil {
		if apperror.IsNotFound(err) {
			h.OK(c, gin.H{"rate": types.Zero()})
			return
		}
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"rate": rate})
}

// RegisterRoutes registers pricing routes.
func (h *PricingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/distributors/:id", h.ListDistributorPrices)
	rg.PUT("/distributors/:id", h.SetDistributorPrice)
	rg.GET("/distributors/:id/tickets/:ticketId", h.GetDistributorRate)
	rg.GET("/parties/:id", h.ListPartyPrices)
	rg.PUT("/parties/:id", h.SetPartyPrice)
	rg.GET("/parties/:id/tickets/:ticketId", h.GetPartyRate)
}
