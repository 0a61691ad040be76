package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/domain/reports"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// PurchaseEntries handles GET /reports/purchases
//
// Query params: from, to (RFC3339, required), distributorId (optional).
func (h *ReportsHandler) PurchaseEntries(c *gin.Context) {
	ctx := c.Request.Context()

	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}

	var distributorID *id.ID
	if raw := c.Query("distributorId"); raw != "" {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid distributor id"))
			return
		}
		distributorID = &parsed
	}

	report, err := h.service.PurchaseEntries(ctx, from, to, distributorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// SaleEntries handles GET /reports/sales
func (h *ReportsHandler) SaleEntries(c *gin.Context) {
	ctx := c.Request.Context()

	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}

	report, err := h.service.SaleEntries(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// TodayStats handles GET /reports/stats/today
func (h *ReportsHandler) TodayStats(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.service.TodayStats(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

// MonthStats handles GET /reports/stats/month
func (h *ReportsHandler) MonthStats(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.service.MonthStats(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

// parseWindow reads the required from/to query params.
func (h *ReportsHandler) parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid or missing 'from' parameter").
			WithDetail("expected", time.RFC3339))
		return time.Time{}, time.Time{}, false
	}

	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid or missing 'to' parameter").
			WithDetail("expected", time.RFC3339))
		return time.Time{}, time.Time{}, false
	}

	if to.Before(from) {
		h.Error(c, apperror.NewValidation("'to' must not precede 'from'"))
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/purchases", h.PurchaseEntries)
	rg.GET("/sales", h.SaleEntries)
	rg.GET("/stats/today", h.TodayStats)
	rg.GET("/stats/month", h.MonthStats)
}
