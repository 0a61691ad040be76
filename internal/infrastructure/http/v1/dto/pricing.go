package dto

import (
	"allot/internal/core/types"
)

// SetPriceRequest sets the agreed rate for one (counterparty, ticket)
// pair. Used by both distributor and party price endpoints.
type SetPriceRequest struct {
	TicketID string      `json:"ticketId" binding:"required"`
	Rate     types.Money `json:"rate" binding:"required"`
}
