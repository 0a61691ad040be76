package dto

import (
	"time"

	"allot/internal/core/id"
	"allot/internal/core/types"
	"allot/internal/domain/documents/purchase"
)

// --- Request DTOs ---

// CreatePurchaseRequest represents a request to create a purchase.
// The document number, line quantities and amounts are computed
// server-side; the date is the draw date of the purchased ranges.
type CreatePurchaseRequest struct {
	Date          time.Time          `json:"date" binding:"required"`
	DistributorID string             `json:"distributorId" binding:"required"`
	InvoiceNo     string             `json:"invoiceNo,omitempty"`
	Comment       string             `json:"comment,omitempty"`
	Lines         []RangeLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RangeLineRequest is one ticket range in a create request. Rate accepts
// a JSON number or string.
type RangeLineRequest struct {
	TicketID string      `json:"ticketId" binding:"required"`
	Series   string      `json:"series,omitempty"`
	FromNo   int64       `json:"fromNo" binding:"required,gt=0"`
	ToNo     int64       `json:"toNo" binding:"required,gt=0"`
	Rate     types.Money `json:"rate" binding:"required"`
}

// ToEntity converts request to domain entity.
func (r *CreatePurchaseRequest) ToEntity() *purchase.Purchase {
	distributorID, _ := id.Parse(r.DistributorID)

	doc := purchase.New(distributorID)
	doc.Date = r.Date
	doc.InvoiceNo = r.InvoiceNo
	doc.Comment = r.Comment

	for _, line := range r.Lines {
		ticketID, _ := id.Parse(line.TicketID)
		doc.AddLine(ticketID, line.Series, line.FromNo, line.ToNo, line.Rate)
	}

	return doc
}

// --- Response DTOs ---

// PurchaseResponse represents a purchase in API responses.
type PurchaseResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	Date          time.Time           `json:"date"`
	DistributorID string              `json:"distributorId"`
	InvoiceNo     string              `json:"invoiceNo,omitempty"`
	Notes         string              `json:"notes"`
	Comment       string              `json:"comment,omitempty"`
	TotalQty      int64               `json:"totalQty"`
	TotalAmount   types.Money         `json:"totalAmount"`
	Lines         []RangeLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Version       int                 `json:"version"`
}

// RangeLineResponse is one ticket range in API responses.
type RangeLineResponse struct {
	LineID   string      `json:"lineId"`
	LineNo   int         `json:"lineNo"`
	TicketID string      `json:"ticketId"`
	Series   string      `json:"series,omitempty"`
	FromNo   int64       `json:"fromNo"`
	ToNo     int64       `json:"toNo"`
	Qty      int64       `json:"qty"`
	Rate     types.Money `json:"rate"`
	Amount   types.Money `json:"amount"`
}

// FromPurchase converts domain entity to response DTO.
func FromPurchase(doc *purchase.Purchase) *PurchaseResponse {
	resp := &PurchaseResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Date:          doc.Date,
		DistributorID: doc.DistributorID.String(),
		InvoiceNo:     doc.InvoiceNo,
		Notes:         doc.Notes,
		Comment:       doc.Comment,
		TotalQty:      doc.TotalQty,
		TotalAmount:   doc.TotalAmount,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
		Version:       doc.Version,
	}

	resp.Lines = make([]RangeLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		resp.Lines[i] = RangeLineResponse{
			LineID:   line.LineID.String(),
			LineNo:   line.LineNo,
			TicketID: line.TicketID.String(),
			Series:   line.Series,
			FromNo:   line.FromNo,
			ToNo:     line.ToNo,
			Qty:      line.Qty,
			Rate:     line.Rate,
			Amount:   line.Amount,
		}
	}

	return resp
}
