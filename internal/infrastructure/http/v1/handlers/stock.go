package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/domain/ledger"
	"allot/internal/domain/stock"
	"allot/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for the stock view.
type StockHandler struct {
	*BaseHandler
	stock  *stock.Service
	ledger *ledger.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, stockSvc *stock.Service, ledgerSvc *ledger.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		stock:       stockSvc,
		ledger:      ledgerSvc,
	}
}

// AvailableRanges handles GET /stock/available
//
// Returns purchased-minus-sold range fragments grouped by ticket, series
// and draw date, with per-row quantities and amounts.
func (h *StockHandler) AvailableRanges(c *gin.Context) {
	ctx := c.Request.Context()

	filter := stock.Filter{}

	if distributorID := c.Query("distributorId"); distributorID != "" {
		parsed, err := id.Parse(distributorID)
		if err == nil {
			filter.DistributorID = &parsed
		}
	}

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}

	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	result, err := h.stock.AvailableRanges(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// CheckRange handles POST /stock/check-range
//
// Validates a proposed sale range for containment in a purchased range
// before the sale document is entered.
func (h *StockHandler) CheckRange(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CheckRangeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticketID, err := id.Parse(req.TicketID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid ticket id"))
		return
	}

	if err := h.stock.CheckSaleRange(ctx, ticketID, req.FromNo, req.ToNo, req.Date); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.CheckRangeResponse{Available: true})
}

// Balances handles GET /stock/balances
//
// Returns per-ticket signed ledger balances (fast path, no range detail).
func (h *StockHandler) Balances(c *gin.Context) {
	ctx := c.Request.Context()

	balances, err := h.ledger.CurrentStock(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": balances})
}

// RegisterRoutes registers stock routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/available", h.AvailableRanges)
	rg.POST("/check-range", h.CheckRange)
	rg.GET("/balances", h.Balances)
}
