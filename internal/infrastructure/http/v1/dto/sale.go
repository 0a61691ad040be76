package dto

import (
	"time"

	"allot/internal/core/id"
	"allot/internal/core/types"
	"allot/internal/domain/documents/sale"
)

// --- Request DTOs ---

// CreateSaleRequest represents a request to create a sale. Each line
// must fall inside a purchased range for its ticket and the ledger
// stock must cover the quantity; otherwise the whole request fails.
type CreateSaleRequest struct {
	Date      time.Time          `json:"date" binding:"required"`
	PartyID   string             `json:"partyId" binding:"required"`
	InvoiceNo string             `json:"invoiceNo,omitempty"`
	Comment   string             `json:"comment,omitempty"`
	Lines     []RangeLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateSaleRequest) ToEntity() *sale.Sale {
	partyID, _ := id.Parse(r.PartyID)

	doc := sale.New(partyID)
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

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID          string              `json:"id"`
	Number      string              `json:"number"`
	Date        time.Time           `json:"date"`
	PartyID     string              `json:"partyId"`
	InvoiceNo   string              `json:"invoiceNo,omitempty"`
	Notes       string              `json:"notes"`
	Comment     string              `json:"comment,omitempty"`
	TotalQty    int64               `json:"totalQty"`
	TotalAmount types.Money         `json:"totalAmount"`
	Lines       []RangeLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Version     int                 `json:"version"`
}

// FromSale converts domain entity to response DTO.
func FromSale(doc *sale.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:          doc.ID.String(),
		Number:      doc.Number,
		Date:        doc.Date,
		PartyID:     doc.PartyID.String(),
		InvoiceNo:   doc.InvoiceNo,
		Notes:       doc.Notes,
		Comment:     doc.Comment,
		TotalQty:    doc.TotalQty,
		TotalAmount: doc.TotalAmount,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		Version:     doc.Version,
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
