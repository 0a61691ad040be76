// Package stock computes the range-aware view of available stock.
//
// Purchases and sales carry their range line items encoded in the header
// notes field. The aggregator re-parses those notes on demand, groups
// entries by (ticket, series, draw date), merges purchased ranges, merges
// sold ranges and subtracts sold from purchased. The validator checks a
// proposed sale range for containment in a purchased range at sale-entry
// time.
package stock

import (
	"context"
	"sort"
	"time"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/core/types"
	"allot/internal/domain/catalogs/ticket"
	"allot/internal/domain/notes"
	"allot/internal/domain/ranges"
	"allot/pkg/logger"
)

// HeaderRow is the slice of a transaction header the stock computation
// needs: identity, counterparty name, draw date and the raw notes text.
type HeaderRow struct {
	ID               id.ID     `db:"id"`
	CounterpartyName string    `db:"counterparty_name"`
	Date             time.Time `db:"date"`
	Notes            string    `db:"notes"`
}

// Filter scopes the headers loaded for aggregation.
type Filter struct {
	DistributorID *id.ID
	DateFrom      *time.Time
	DateTo        *time.Time
}

// PurchaseSource reads purchase headers for stock computation.
type PurchaseSource interface {
	// ListForStock returns purchase headers in scope. The distributor
	// filter applies to purchases only.
	ListForStock(ctx context.Context, filter Filter) ([]HeaderRow, error)

	// ListByTicket returns every purchase whose lines reference the
	// ticket, regardless of distributor or date.
	ListByTicket(ctx context.Context, ticketID id.ID) ([]HeaderRow, error)
}

// SaleSource reads sale headers for stock computation.
type SaleSource interface {
	ListForStock(ctx context.Context, filter Filter) ([]HeaderRow, error)
}

// Row is one available range fragment in the aggregated view.
type Row struct {
	Ticket      string      `json:"ticket"`
	Series      string      `json:"series"`
	DrawDate    string      `json:"drawDate"`
	FromNo      int64       `json:"fromNo"`
	ToNo        int64       `json:"toNo"`
	Qty         int64       `json:"qty"`
	Rate        types.Money `json:"rate"`
	Amount      types.Money `json:"amount"`
	Distributor string      `json:"distributor"`
}

// Result is the aggregated stock view with totals.
type Result struct {
	Rows        []Row       `json:"rows"`
	TotalQty    int64       `json:"totalQty"`
	TotalAmount types.Money `json:"totalAmount"`
}

// Service computes range-aware stock. Both operations are pure read-side
// computations over a snapshot of loaded headers.
type Service struct {
	purchases PurchaseSource
	sales     SaleSource
}

// NewService creates a new stock service.
func NewService(purchases PurchaseSource, sales SaleSource) *Service {
	return &Service{
		purchases: purchases,
		sales:     sales,
	}
}

// group accumulates parsed entries under one (ticket, series, draw date) key.
type group struct {
	ranges      []ranges.Range
	rate        types.Money
	rateSet     bool
	distributor string
	drawDate    time.Time
}

// AvailableRanges computes the currently available ranges in scope.
//
// Sales for a key without purchases are invisible: no negative stock is
// surfaced by this path. Purchases with no parseable notes contribute
// nothing. The rate shown per group is the first parsed entry's rate;
// entries in a group are assumed to share one rate and a disagreement is
// logged, not corrected.
func (s *Service) AvailableRanges(ctx context.Context, filter Filter) (Result, error) {
	purchased, err := s.purchases.ListForStock(ctx, filter)
	if err != nil {
		return Result{}, err
	}

	// Sales are loaded without the distributor filter; sold ranges cut
	// into purchased stock no matter which party bought them.
	sold, err := s.sales.ListForStock(ctx, Filter{DateFrom: filter.DateFrom, DateTo: filter.DateTo})
	if err != nil {
		return Result{}, err
	}

	purchGroups := make(map[ranges.Key]*group)
	var keys []ranges.Key

	for _, h := range purchased {
		for _, e := range notes.ParseNotes(h.Notes) {
			key := ranges.NewKey(e.Ticket, e.Series, h.Date)
			g, ok := purchGroups[key]
			if !ok {
				g = &group{distributor: h.CounterpartyName, drawDate: h.Date}
				purchGroups[key] = g
				keys = append(keys, key)
			}
			g.ranges = append(g.ranges, e.Range())
			if !g.rateSet {
				g.rate = e.Rate
				g.rateSet = true
			} else if !g.rate.Equal(e.Rate) {
				logger.Warn(ctx, "rate disagreement within stock group",
					"ticket", key.Ticket,
					"series", key.Series,
					"draw_date", key.DrawDate,
					"first_rate", g.rate,
					"other_rate", e.Rate)
			}
		}
	}

	soldGroups := make(map[ranges.Key][]ranges.Range)
	for _, h := range sold {
		for _, e := range notes.ParseNotes(h.Notes) {
			key := ranges.NewKey(e.Ticket, e.Series, h.Date)
			soldGroups[key] = append(soldGroups[key], e.Range())
		}
	}

	// Deterministic output order: ticket, series, draw date.
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Ticket != b.Ticket {
			return a.Ticket < b.Ticket
		}
		if a.Series != b.Series {
			return a.Series < b.Series
		}
		return a.DrawDate < b.DrawDate
	})

	result := Result{TotalAmount: types.Zero()}
	for _, key := range keys {
		g := purchGroups[key]
		avail := ranges.Subtract(g.ranges, soldGroups[key])
		mult := ticket.MultiplierFor(key.Ticket)

		for _, r := range avail {
			qty := r.Length() * mult
			amount := g.rate.Mul(types.NewMoney(float64(qty)))
			result.Rows = append(result.Rows, Row{
				Ticket:      key.Ticket,
				Series:      key.Series,
				DrawDate:    key.DrawDate,
				FromNo:      r.From,
				ToNo:        r.To,
				Qty:         qty,
				Rate:        g.rate,
				Amount:      amount,
				Distributor: g.distributor,
			})
			result.TotalQty += qty
			result.TotalAmount = result.TotalAmount.Add(amount)
		}
	}

	return result, nil
}

// CheckSaleRange validates that the candidate range [fromNo, toNo] can be
// sold on saleDate: some purchase of the ticket, drawn on or after the
// sale date, must contain the whole candidate within a single raw range.
//
// Containment is checked against raw unmerged purchased ranges: a
// candidate spanning two adjacent purchased ranges is rejected even
// though the aggregated view would show them merged. Prior sales are not
// consulted; this check guards range provenance, not remaining quantity.
func (s *Service) CheckSaleRange(ctx context.Context, ticketID id.ID, fromNo, toNo int64, saleDate time.Time) error {
	if fromNo <= 0 || toNo < fromNo {
		return apperror.NewValidation("range bounds must be positive and from <= to").
			WithDetail("from", fromNo).
			WithDetail("to", toNo)
	}

	headers, err := s.purchases.ListByTicket(ctx, ticketID)
	if err != nil {
		return err
	}

	if len(headers) == 0 {
		return apperror.NewRangeNotAvailable(fromNo, toNo, nil).
			WithDetail("ticket_id", ticketID.String())
	}

	saleDay := saleDate.Truncate(24 * time.Hour)
	candidate := ranges.Range{From: fromNo, To: toNo}

	var candidates []string
	anyValidDate := false
	for _, h := range headers {
		// The sale must happen on or before the draw: purchases whose
		// draw date already passed relative to saleDate are discarded.
		if h.Date.Truncate(24 * time.Hour).Before(saleDay) {
			continue
		}
		anyValidDate = true

		for _, r := range notes.ExtractRanges(h.Notes) {
			if r.Contains(candidate) {
				return nil
			}
			candidates = append(candidates, r.String()+" (Draw: "+h.Date.Format("2006-01-02")+")")
		}
	}

	if !anyValidDate {
		return apperror.NewBusinessRule(apperror.CodeSaleAfterDraw,
			"Sale date is after every draw date for this ticket").
			WithDetail("ticket_id", ticketID.String()).
			WithDetail("sale_date", saleDay.Format("2006-01-02"))
	}

	return apperror.NewRangeNotAvailable(fromNo, toNo, candidates).
		WithDetail("ticket_id", ticketID.String())
}
