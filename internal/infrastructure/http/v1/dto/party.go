package dto

import (
	"allot/internal/domain/catalogs/party"
)

// --- Request DTOs ---

// CreatePartyRequest creates a party (retail buyer). The display id
// (code) is assigned by the service, not the client.
type CreatePartyRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreatePartyRequest) ToEntity() *party.Party {
	p := party.New(r.Name)
	p.ContactPerson = r.ContactPerson
	p.Phone = r.Phone
	p.Email = r.Email
	p.Address = r.Address
	return p
}

// UpdatePartyRequest updates party fields.
type UpdatePartyRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	Address       *string `json:"address,omitempty"`
	Version       int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdatePartyRequest) ApplyTo(p *party.Party) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.ContactPerson != nil {
		p.ContactPerson = *r.ContactPerson
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.Email != nil {
		p.Email = *r.Email
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
	p.Version = r.Version
}

// --- Response DTOs ---

// PartyResponse represents a party in API responses.
type PartyResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	DeletionMark  bool   `json:"deletionMark,omitempty"`
	Version       int    `json:"version"`
}

// FromParty converts domain entity to response DTO.
func FromParty(p *party.Party) *PartyResponse {
	return &PartyResponse{
		ID:            p.ID.String(),
		Code:          p.Code,
		Name:          p.Name,
		ContactPerson: p.ContactPerson,
		Phone:         p.Phone,
		Email:         p.Email,
		Address:       p.Address,
		DeletionMark:  p.DeletionMark,
		Version:       p.Version,
	}
}
