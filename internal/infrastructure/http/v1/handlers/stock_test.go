package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allot/internal/core/apperror"
	"allot/internal/core/entity"
	"allot/internal/core/id"
	"allot/internal/core/types"
	"allot/internal/domain/ledger"
	"allot/internal/domain/stock"
	"allot/internal/infrastructure/http/v1/handlers"
	"allot/internal/infrastructure/http/v1/middleware"
)

type fakePurchases struct {
	rows []stock.HeaderRow
}

func (f *fakePurchases) ListForStock(ctx context.Context, filter stock.Filter) ([]stock.HeaderRow, error) {
	return f.rows, nil
}

func (f *fakePurchases) ListByTicket(ctx context.Context, ticketID id.ID) ([]stock.HeaderRow, error) {
	return f.rows, nil
}

type fakeSales struct {
	rows []stock.HeaderRow
}

func (f *fakeSales) ListForStock(ctx context.Context, filter stock.Filter) ([]stock.HeaderRow, error) {
	return f.rows, nil
}

type fakeLedgerRepo struct {
	balances []ledger.Balance
}

func (f *fakeLedgerRepo) Append(ctx context.Context, deltas []entity.StockDelta) error {
	return nil
}

func (f *fakeLedgerRepo) DeleteBySource(ctx context.Context, sourceID id.ID) error {
	return nil
}

func (f *fakeLedgerRepo) GetBalance(ctx context.Context, ticketID id.ID) (types.Quantity, error) {
	return 0, nil
}

func (f *fakeLedgerRepo) CurrentStock(ctx context.Context) ([]ledger.Balance, error) {
	return f.balances, nil
}

func newStockRouter(purchases *fakePurchases, sales *fakeSales, ledgerRepo *fakeLedgerRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.ErrorHandler())

	handler := handlers.NewStockHandler(
		handlers.NewBaseHandler(),
		stock.NewService(purchases, sales),
		ledger.NewService(ledgerRepo),
	)
	handler.RegisterRoutes(router.Group("/stock"))

	return router
}

var drawDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAvailableRangesEndpoint(t *testing.T) {
	purchases := &fakePurchases{rows: []stock.HeaderRow{{
		ID:               id.New(),
		CounterpartyName: "Delta Distributors",
		Date:             drawDate,
		Notes:            "D10 | Series 5X | 1-50 | Qty 500 @ 6.00",
	}}}
	router := newStockRouter(purchases, &fakeSales{}, &fakeLedgerRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stock/available", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Rows []struct {
			Ticket string `json:"ticket"`
			FromNo int64  `json:"fromNo"`
			ToNo   int64  `json:"toNo"`
			Qty    int64  `json:"qty"`
		} `json:"rows"`
		TotalQty int64 `json:"totalQty"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "D10", result.Rows[0].Ticket)
	assert.Equal(t, int64(1), result.Rows[0].FromNo)
	assert.Equal(t, int64(50), result.Rows[0].ToNo)
	assert.Equal(t, int64(500), result.Rows[0].Qty)
	assert.Equal(t, int64(500), result.TotalQty)
}

func TestCheckRangeEndpoint(t *testing.T) {
	ticketID := id.New()
	purchases := &fakePurchases{rows: []stock.HeaderRow{{
		ID:    id.New(),
		Date:  drawDate,
		Notes: "D10 | Series 5X | 1-50 | Qty 500 @ 6.00",
	}}}
	router := newStockRouter(purchases, &fakeSales{}, &fakeLedgerRepo{})

	body := `{"ticketId":"` + ticketID.String() + `","fromNo":5,"toNo":20,"date":"2024-01-01T00:00:00Z"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stock/check-range", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)
}

func TestCheckRangeEndpointRejectsUncoveredRange(t *testing.T) {
	ticketID := id.New()
	purchases := &fakePurchases{rows: []stock.HeaderRow{{
		ID:    id.New(),
		Date:  drawDate,
		Notes: "D10 | Series 5X | 1-50 | Qty 500 @ 6.00",
	}}}
	router := newStockRouter(purchases, &fakeSales{}, &fakeLedgerRepo{})

	body := `{"ticketId":"` + ticketID.String() + `","fromNo":60,"toNo":70,"date":"2024-01-01T00:00:00Z"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stock/check-range", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var errResp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, apperror.CodeRangeNotAvailable, errResp.Code)
}

func TestBalancesEndpoint(t *testing.T) {
	ledgerRepo := &fakeLedgerRepo{balances: []ledger.Balance{{
		TicketID:   id.New(),
		TicketName: "D10",
		Quantity:   types.NewQuantityFromInt64(300),
	}}}
	router := newStockRouter(&fakePurchases{}, &fakeSales{}, ledgerRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stock/balances", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ticketName":"D10"`)
	assert.Contains(t, w.Body.String(), "300.0000")
}