package entity

import (
	"time"

	"allot/internal/core/id"
	"allot/internal/core/types"
)

// DeltaType distinguishes ledger movement directions by source document.
type DeltaType string

const (
	DeltaTypePurchase DeltaType = "purchase"
	DeltaTypeSale     DeltaType = "sale"
)

// StockDelta is one signed quantity movement in the stock ledger.
// Positive deltas come from purchases, negative from sales. The ledger
// feeds the coarse aggregate stock view only; the range-aware view is
// recomputed from document notes.
type StockDelta struct {
	LineID     id.ID          `db:"line_id" json:"lineId"`
	SourceID   id.ID          `db:"source_id" json:"sourceId"`
	SourceType DeltaType      `db:"source_type" json:"sourceType"`
	Period     time.Time      `db:"period" json:"period"`
	TicketID   id.ID          `db:"ticket_id" json:"ticketId"`
	Delta      types.Quantity `db:"delta" json:"delta"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
}

// NewStockDelta creates a ledger movement for a document line.
func NewStockDelta(sourceID id.ID, sourceType DeltaType, period time.Time, ticketID id.ID, delta types.Quantity) StockDelta {
	return StockDelta{
		LineID:     id.New(),
		SourceID:   sourceID,
		SourceType: sourceType,
		Period:     period,
		TicketID:   ticketID,
		Delta:      delta,
		CreatedAt:  time.Now().UTC(),
	}
}
