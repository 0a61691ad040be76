package dto

import (
	"allot/internal/domain/catalogs/ticket"
)

// --- Request DTOs ---

// CreateTicketRequest creates a ticket type. The name encodes the
// quantity multiplier (D10 means 10 items per number).
type CreateTicketRequest struct {
	Name string `json:"name" binding:"required"`
}

// ToEntity converts request to domain entity.
func (r *CreateTicketRequest) ToEntity() *ticket.Ticket {
	return ticket.New(r.Name)
}

// UpdateTicketRequest renames a ticket type.
type UpdateTicketRequest struct {
	Name    string `json:"name" binding:"required"`
	Version int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateTicketRequest) ApplyTo(t *ticket.Ticket) {
	renamed := ticket.New(r.Name)
	t.Name = renamed.Name
	t.Code = renamed.Code
	t.Version = r.Version
}

// --- Response DTOs ---

// TicketResponse represents a ticket in API responses.
type TicketResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Multiplier   int64  `json:"multiplier"`
	DeletionMark bool   `json:"deletionMark,omitempty"`
	Version      int    `json:"version"`
}

// FromTicket converts domain entity to response DTO.
func FromTicket(t *ticket.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:           t.ID.String(),
		Code:         t.Code,
		Name:         t.Name,
		Multiplier:   t.Multiplier(),
		DeletionMark: t.DeletionMark,
		Version:      t.Version,
	}
}
