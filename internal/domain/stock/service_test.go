package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/core/types"
)

type fakePurchases struct {
	rows     []HeaderRow
	byTicket []HeaderRow
}

func (f *fakePurchases) ListForStock(ctx context.Context, filter Filter) ([]HeaderRow, error) {
	return f.rows, nil
}

func (f *fakePurchases) ListByTicket(ctx context.Context, ticketID id.ID) ([]HeaderRow, error) {
	return f.byTicket, nil
}

type fakeSales struct {
	rows []HeaderRow
}

func (f *fakeSales) ListForStock(ctx context.Context, filter Filter) ([]HeaderRow, error) {
	return f.rows, nil
}

func newTestService(purchases *fakePurchases, sales *fakeSales) *Service {
	return NewService(purchases, sales)
}

var drawDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAvailableRangesEndToEnd(t *testing.T) {
	// Purchase D10 (multiplier 10) series 5X range 1-50 at 6.00.
	purchases := &fakePurchases{rows: []HeaderRow{{
		ID:               id.New(),
		CounterpartyName: "Delta Distributors",
		Date:             drawDate,
		Notes:            "D10 | Series 5X | 1-50 | Qty 500 @ 6.00",
	}}}
	sales := &fakeSales{}
	svc := newTestService(purchases, sales)

	result, err := svc.AvailableRanges(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, "D10", row.Ticket)
	assert.Equal(t, "5X", row.Series)
	assert.Equal(t, "2024-01-01", row.DrawDate)
	assert.Equal(t, int64(1), row.FromNo)
	assert.Equal(t, int64(50), row.ToNo)
	assert.Equal(t, int64(500), row.Qty)
	assert.True(t, types.MustMoney("6.00").Equal(row.Rate))
	assert.True(t, types.MustMoney("3000.00").Equal(row.Amount))
	assert.Equal(t, "Delta Distributors", row.Distributor)
	assert.Equal(t, int64(500), result.TotalQty)
	assert.True(t, types.MustMoney("3000.00").Equal(result.TotalAmount))

	// Sell range 1-20 of the same ticket/series/date.
	sales.rows = []HeaderRow{{
		ID:    id.New(),
		Date:  drawDate,
		Notes: "D10 | Series 5X | 1-20 | Qty 200 @ 8.00",
	}}

	result, err = svc.AvailableRanges(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row = result.Rows[0]
	assert.Equal(t, int64(21), row.FromNo)
	assert.Equal(t, int64(50), row.ToNo)
	assert.Equal(t, int64(300), row.Qty)
	assert.Equal(t, int64(300), result.TotalQty)
}

func TestAvailableRangesGroupingIsolation(t *testing.T) {
	// Same ticket and draw date, different series: overlapping numeric
	// ranges must never merge or subtract against each other.
	purchases := &fakePurchases{rows: []HeaderRow{{
		ID:   id.New(),
		Date: drawDate,
		Notes: "M5 | Series 1A | 1-100 | Qty 500 @ 2.00\n" +
			"M5 | Series 1B | 50-150 | Qty 505 @ 2.00",
	}}}
	sales := &fakeSales{rows: []HeaderRow{{
		ID:    id.New(),
		Date:  drawDate,
		Notes: "M5 | Series 1B | 50-150 | Qty 505 @ 3.00",
	}}}
	svc := newTestService(purchases, sales)

	result, err := svc.AvailableRanges(context.Background(), Filter{})
	require.NoError(t, err)

	// Series 1B fully sold, series 1A untouched.
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "1A", result.Rows[0].Series)
	assert.Equal(t, int64(1), result.Rows[0].FromNo)
	assert.Equal(t, int64(100), result.Rows[0].ToNo)
}

func TestAvailableRangesSaleWithoutPurchaseInvisible(t *testing.T) {
	purchases := &fakePurchases{}
	sales := &fakeSales{rows: []HeaderRow{{
		ID:    id.New(),
		Date:  drawDate,
		Notes: "M5 | Series 1A | 1-10 | Qty 50 @ 2.00",
	}}}
	svc := newTestService(purchases, sales)

	result, err := svc.AvailableRanges(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Equal(t, int64(0), result.TotalQty)
}

func TestAvailableRangesIgnoresUnparseableNotes(t *testing.T) {
	purchases := &fakePurchases{rows: []HeaderRow{
		{ID: id.New(), Date: drawDate, Notes: ""},
		{ID: id.New(), Date: drawDate, Notes: "free text only\nno entries"},
	}}
	svc := newTestService(purchases, &fakeSales{})

	result, err := svc.AvailableRanges(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
}

func TestAvailableRangesMergesAdjacentPurchases(t *testing.T) {
	purchases := &fakePurchases{rows: []HeaderRow{{
		ID:   id.New(),
		Date: drawDate,
		Notes: "M5 | Series 1A | 1-10 | Qty 50 @ 2.00\n" +
			"M5 | Series 1A | 11-20 | Qty 50 @ 2.00",
	}}}
	svc := newTestService(purchases, &fakeSales{})

	result, err := svc.AvailableRanges(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, int64(1), result.Rows[0].FromNo)
	assert.Equal(t, int64(20), result.Rows[0].ToNo)
	assert.Equal(t, int64(100), result.Rows[0].Qty)
}

func TestCheckSaleRangeContainment(t *testing.T) {
	ticketID := id.New()
	purchases := &fakePurchases{byTicket: []HeaderRow{{
		ID:    id.New(),
		Date:  drawDate,
		Notes: "M5 | Series 1A | 100-200 | Qty 505 @ 2.00",
	}}}
	svc := newTestService(purchases, &fakeSales{})
	ctx := context.Background()

	// Fully contained, sale_date == draw date: valid.
	assert.NoError(t, svc.CheckSaleRange(ctx, ticketID, 150, 160, drawDate))

	// Sale the day before the draw: still valid.
	assert.NoError(t, svc.CheckSaleRange(ctx, ticketID, 150, 160, drawDate.AddDate(0, 0, -1)))

	// Spanning past the purchased range: rejected, message lists candidates.
	err := svc.CheckSaleRange(ctx, ticketID, 190, 210, drawDate)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeRangeNotAvailable, appErr.Code)
	assert.Contains(t, appErr.Message, "100-200 (Draw: 2024-01-01)")
}

func TestCheckSaleRangeAfterDraw(t *testing.T) {
	ticketID := id.New()
	purchases := &fakePurchases{byTicket: []HeaderRow{{
		ID:    id.New(),
		Date:  drawDate,
		Notes: "M5 | Series 1A | 100-200 | Qty 505 @ 2.00",
	}}}
	svc := newTestService(purchases, &fakeSales{})

	// Selling after the draw has passed: every purchase is discarded.
	err := svc.CheckSaleRange(context.Background(), ticketID, 150, 160, drawDate.AddDate(0, 0, 1))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeSaleAfterDraw, appErr.Code)
}

func TestCheckSaleRangeSpanningAdjacentPurchasesRejected(t *testing.T) {
	// Two raw purchased ranges 1-10 and 11-20. The aggregator would merge
	// them, but the validator checks single raw range containment.
	ticketID := id.New()
	purchases := &fakePurchases{byTicket: []HeaderRow{{
		ID:   id.New(),
		Date: drawDate,
		Notes: "M5 | Series 1A | 1-10 | Qty 50 @ 2.00\n" +
			"M5 | Series 1A | 11-20 | Qty 50 @ 2.00",
	}}}
	svc := newTestService(purchases, &fakeSales{})

	err := svc.CheckSaleRange(context.Background(), ticketID, 5, 15, drawDate)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeRangeNotAvailable, appErr.Code)
}

func TestCheckSaleRangeNoPurchases(t *testing.T) {
	svc := newTestService(&fakePurchases{}, &fakeSales{})

	err := svc.CheckSaleRange(context.Background(), id.New(), 1, 10, drawDate)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeRangeNotAvailable, appErr.Code)
}

func TestCheckSaleRangeInvalidBounds(t *testing.T) {
	svc := newTestService(&fakePurchases{}, &fakeSales{})

	err := svc.CheckSaleRange(context.Background(), id.New(), 10, 5, drawDate)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
