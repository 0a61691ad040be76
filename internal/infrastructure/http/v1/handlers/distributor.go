package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/domain/catalogs/distributor"
	"allot/internal/infrastructure/http/v1/dto"
)

// DistributorHandler handles HTTP requests for the distributor catalog.
type DistributorHandler struct {
	*BaseHandler
	service *distributor.Service
}

// NewDistributorHandler creates a new distributor handler.
func NewDistributorHandler(base *BaseHandler, service *distributor.Service) *DistributorHandler {
	return &DistributorHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /catalog/distributors
func (h *DistributorHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDistributorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d := req.ToEntity()
	if err := h.service.Create(ctx, d); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromDistributor(d))
}

// Get handles GET /catalog/distributors/:id
func (h *DistributorHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	distributorID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	d, err := h.service.GetByID(ctx, distributorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDistributor(d))
}

// List handles GET /catalog/distributors
func (h *DistributorHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	distributors, err := h.service.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.DistributorResponse, len(distributors))
	for i, d := range distributors {
		items[i] = dto.FromDistributor(d)
	}

	h.OK(c, gin.H{"items": items})
}

// Update handles PUT /catalog/distributors/:id
func (h *DistributorHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	distributorID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateDistributorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.service.GetByID(ctx, distributorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(d)

	if err := h.service.Update(ctx, d); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDistributor(d))
}

// Delete handles DELETE /catalog/distributors/:id
func (h *DistributorHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	distributorID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, distributorID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers distributor catalog routes.
func (h *DistributorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
