// Package reports produces flat entry listings and period summaries
// over purchase and sale documents.
//
// Like the stock aggregator, reports re-parse the pipe-delimited notes
// lines; a header whose notes fail to parse simply contributes no rows.
package reports

import (
	"context"
	"time"

	"allot/internal/core/id"
	"allot/internal/core/types"
	"allot/internal/domain/notes"
	"allot/internal/domain/stock"
)

// Entry is one parsed note line annotated with its header context.
type Entry struct {
	Date         time.Time   `json:"date"`
	Counterparty string      `json:"counterparty"`
	Ticket       string      `json:"ticket"`
	Series       string      `json:"series"`
	FromNo       int64       `json:"fromNo"`
	ToNo         int64       `json:"toNo"`
	Qty          int64       `json:"qty"`
	Rate         types.Money `json:"rate"`
	Amount       types.Money `json:"amount"`
}

// EntryReport is a window of entries with totals.
type EntryReport struct {
	Entries     []Entry     `json:"entries"`
	TotalQty    int64       `json:"totalQty"`
	TotalAmount types.Money `json:"totalAmount"`
}

// Stats sums one side (purchases or sales) over a period.
type Stats struct {
	Count       int         `json:"count"`
	TotalQty    int64       `json:"totalQty"`
	TotalAmount types.Money `json:"totalAmount"`
}

// Summary pairs purchase and sale stats for one period.
type Summary struct {
	Purchases Stats `json:"purchases"`
	Sales     Stats `json:"sales"`
}

// Service builds reports from the same header sources the stock
// aggregator reads.
type Service struct {
	purchases stock.PurchaseSource
	sales     stock.SaleSource
	now       func() time.Time
}

// NewService creates a new reports service.
func NewService(purchases stock.PurchaseSource, sales stock.SaleSource) *Service {
	return &Service{
		purchases: purchases,
		sales:     sales,
		now:       time.Now,
	}
}

// PurchaseEntries flattens every parsed purchase note line in the window.
func (s *Service) PurchaseEntries(ctx context.Context, from, to time.Time, distributorID *id.ID) (EntryReport, error) {
	headers, err := s.purchases.ListForStock(ctx, stock.Filter{
		DistributorID: distributorID,
		DateFrom:      &from,
		DateTo:        &to,
	})
	if err != nil {
		return EntryReport{}, err
	}
	return buildEntryReport(headers), nil
}

// SaleEntries flattens every parsed sale note line in the window.
func (s *Service) SaleEntries(ctx context.Context, from, to time.Time) (EntryReport, error) {
	headers, err := s.sales.ListForStock(ctx, stock.Filter{
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return EntryReport{}, err
	}
	return buildEntryReport(headers), nil
}

// TodayStats sums both sides for the current calendar day.
func (s *Service) TodayStats(ctx context.Context) (Summary, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return s.summary(ctx, from, to)
}

// MonthStats sums both sides for the current calendar month.
func (s *Service) MonthStats(ctx context.Context) (Summary, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return s.summary(ctx, from, to)
}

func (s *Service) summary(ctx context.Context, from, to time.Time) (Summary, error) {
	filter := stock.Filter{DateFrom: &from, DateTo: &to}

	purchased, err := s.purchases.ListForStock(ctx, filter)
	if err != nil {
		return Summary{}, err
	}
	sold, err := s.sales.ListForStock(ctx, filter)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Purchases: buildStats(purchased),
		Sales:     buildStats(sold),
	}, nil
}

func buildEntryReport(headers []stock.HeaderRow) EntryReport {
	report := EntryReport{TotalAmount: types.Zero()}
	for _, h := range headers {
		for _, e := range notes.ParseNotes(h.Notes) {
			amount := e.Amount()
			report.Entries = append(report.Entries, Entry{
				Date:         h.Date,
				Counterparty: h.CounterpartyName,
				Ticket:       e.Ticket,
				Series:       e.Series,
				FromNo:       e.FromNo,
				ToNo:         e.ToNo,
				Qty:          e.Qty,
				Rate:         e.Rate,
				Amount:       amount,
			})
			report.TotalQty += e.Qty
			report.TotalAmount = report.TotalAmount.Add(amount)
		}
	}
	return report
}

func buildStats(headers []stock.HeaderRow) Stats {
	stats := Stats{TotalAmount: types.Zero()}
	for _, h := range headers {
		entries := notes.ParseNotes(h.Notes)
		if len(entries) == 0 {
			continue
		}
		stats.Count++
		for _, e := range entries {
			stats.TotalQty += e.Qty
			stats.TotalAmount = stats.TotalAmount.Add(e.Amount())
		}
	}
	return stats
}
