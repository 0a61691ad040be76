package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allot/internal/core/id"
	"allot/internal/core/types"
	"allot/internal/domain/stock"
)

type fakeSource struct {
	rows       []stock.HeaderRow
	lastFilter stock.Filter
}

func (f *fakeSource) ListForStock(ctx context.Context, filter stock.Filter) ([]stock.HeaderRow, error) {
	f.lastFilter = filter
	var out []stock.HeaderRow
	for _, r := range f.rows {
		if filter.DateFrom != nil && r.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && r.Date.After(*filter.DateTo) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeSource) ListByTicket(ctx context.Context, ticketID id.ID) ([]stock.HeaderRow, error) {
	return nil, nil
}

func TestPurchaseEntries(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	purchases := &fakeSource{rows: []stock.HeaderRow{
		{
			ID:               id.New(),
			CounterpartyName: "Acme Agencies",
			Date:             date,
			Notes:            "D10 | Series 5X | 1-50 | Qty 500 @ 6.00\nM5 | Series 1A | 100-109 | Qty 50 @ 2.00",
		},
		{
			ID:               id.New(),
			CounterpartyName: "Noise",
			Date:             date,
			Notes:            "not a parseable line",
		},
	}}
	svc := NewService(purchases, &fakeSource{})

	report, err := svc.PurchaseEntries(context.Background(),
		date.AddDate(0, 0, -1), date.AddDate(0, 0, 1), nil)
	require.NoError(t, err)

	require.Len(t, report.Entries, 2)
	first := report.Entries[0]
	assert.Equal(t, "Acme Agencies", first.Counterparty)
	assert.Equal(t, "D10", first.Ticket)
	assert.Equal(t, int64(500), first.Qty)
	assert.True(t, types.MustMoney("3000.00").Equal(first.Amount))

	assert.Equal(t, int64(550), report.TotalQty)
	assert.True(t, types.MustMoney("3100.00").Equal(report.TotalAmount))
}

func TestPurchaseEntriesPassesDistributorFilter(t *testing.T) {
	purchases := &fakeSource{}
	svc := NewService(purchases, &fakeSource{})

	distID := id.New()
	_, err := svc.PurchaseEntries(context.Background(),
		time.Now().AddDate(0, 0, -7), time.Now(), &distID)
	require.NoError(t, err)

	require.NotNil(t, purchases.lastFilter.DistributorID)
	assert.Equal(t, distID, *purchases.lastFilter.DistributorID)
}

func TestTodayStats(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	today := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	purchases := &fakeSource{rows: []stock.HeaderRow{
		{Date: today, Notes: "D10 | Series 5X | 1-50 | Qty 500 @ 6.00"},
		{Date: yesterday, Notes: "D10 | Series 5X | 51-60 | Qty 100 @ 6.00"},
	}}
	sales := &fakeSource{rows: []stock.HeaderRow{
		{Date: today, Notes: "D10 | Series 5X | 1-20 | Qty 200 @ 7.50"},
	}}

	svc := NewService(purchases, sales)
	svc.now = func() time.Time { return now }

	summary, err := svc.TodayStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Purchases.Count)
	assert.Equal(t, int64(500), summary.Purchases.TotalQty)
	assert.True(t, types.MustMoney("3000.00").Equal(summary.Purchases.TotalAmount))

	assert.Equal(t, 1, summary.Sales.Count)
	assert.Equal(t, int64(200), summary.Sales.TotalQty)
	assert.True(t, types.MustMoney("1500.00").Equal(summary.Sales.TotalAmount))
}

func TestMonthStats(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	purchases := &fakeSource{rows: []stock.HeaderRow{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Notes: "M5 | Series 1A | 1-10 | Qty 50 @ 2.00"},
		{Date: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), Notes: "M5 | Series 1A | 11-20 | Qty 50 @ 2.00"},
		{Date: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), Notes: "M5 | Series 1A | 21-30 | Qty 50 @ 2.00"},
	}}

	svc := NewService(purchases, &fakeSource{})
	svc.now = func() time.Time { return now }

	summary, err := svc.MonthStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Purchases.Count)
	assert.Equal(t, int64(100), summary.Purchases.TotalQty)
	assert.Equal(t, 0, summary.Sales.Count)
}
