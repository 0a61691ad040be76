// Package sale provides the Sale document: numbered ticket ranges sold
// to a party.
package sale

import (
	"context"

	"allot/internal/core/apperror"
	"allot/internal/core/entity"
	"allot/internal/core/id"
	"allot/internal/core/types"
)

// Sale is a sale transaction header. Notes carries the canonical
// pipe-delimited encoding of every range line item, same grammar as
// purchases.
type Sale struct {
	entity.Document

	// PartyID references the buying party
	PartyID id.ID `db:"party_id" json:"partyId"`

	// InvoiceNo is an optional invoice reference
	InvoiceNo string `db:"invoice_no" json:"invoiceNo,omitempty"`

	// Notes is the persisted wire-format encoding of all range lines
	Notes string `db:"notes" json:"notes"`

	// Totals (calculated from lines)
	TotalQty    int64       `db:"total_qty" json:"totalQty"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Table part: sold ranges
	Lines []Line `db:"-" json:"lines"`
}

// Line is one sold ticket range.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	TicketID id.ID  `db:"ticket_id" json:"ticketId"`
	Series   string `db:"series" json:"series"`
	FromNo   int64  `db:"from_no" json:"fromNo"`
	ToNo     int64  `db:"to_no" json:"toNo"`

	// Qty is range length times the ticket multiplier
	Qty    int64       `db:"qty" json:"qty"`
	Rate   types.Money `db:"rate" json:"rate"`
	Amount types.Money `db:"amount" json:"amount"`
}

// New creates a sale document for a party.
func New(partyID id.ID) *Sale {
	return &Sale{
		Document:    entity.NewDocument(),
		PartyID:     partyID,
		TotalAmount: types.Zero(),
		Lines:       make([]Line, 0),
	}
}

// AddLine appends a range line. Qty and Amount are filled in by the
// service once the ticket multiplier is known.
func (s *Sale) AddLine(ticketID id.ID, series string, fromNo, toNo int64, rate types.Money) {
	s.Lines = append(s.Lines, Line{
		LineID:   id.New(),
		LineNo:   len(s.Lines) + 1,
		TicketID: ticketID,
		Series:   series,
		FromNo:   fromNo,
		ToNo:     toNo,
		Rate:     rate,
	})
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.PartyID) {
		return apperror.NewValidation("party is required").
			WithDetail("field", "partyId")
	}

	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range s.Lines {
		if id.IsNil(line.TicketID) {
			return apperror.NewValidation("ticket is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.FromNo <= 0 || line.ToNo < line.FromNo {
			return apperror.NewValidation("range bounds must be positive and from <= to").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.Rate.IsPositive() {
			return apperror.NewValidation("rate must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
