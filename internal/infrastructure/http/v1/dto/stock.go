package dto

import (
	"time"
)

// CheckRangeRequest asks whether a proposed sale range is covered by a
// purchased range for the ticket.
type CheckRangeRequest struct {
	TicketID string    `json:"ticketId" binding:"required"`
	FromNo   int64     `json:"fromNo" binding:"required,gt=0"`
	ToNo     int64     `json:"toNo" binding:"required,gt=0"`
	Date     time.Time `json:"date" binding:"required"`
}

// CheckRangeResponse reports a passed containment check. Failures are
// rendered as structured errors, not as this body.
type CheckRangeResponse struct {
	Available bool `json:"available"`
}
