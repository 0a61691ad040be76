package dto

import (
	"allot/internal/domain/catalogs/distributor"
)

// --- Request DTOs ---

// CreateDistributorRequest creates a distributor. The display id (code)
// is assigned by the service, not the client.
type CreateDistributorRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateDistributorRequest) ToEntity() *distributor.Distributor {
	d := distributor.New(r.Name)
	d.ContactPerson = r.ContactPerson
	d.Phone = r.Phone
	d.Email = r.Email
	d.Address = r.Address
	return d
}

// UpdateDistributorRequest updates distributor fields.
type UpdateDistributorRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	Address       *string `json:"address,omitempty"`
	Version       int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateDistributorRequest) ApplyTo(d *distributor.Distributor) {
	if r.Name != nil {
		d.Name = *r.Name
	}
	if r.ContactPerson != nil {
		d.ContactPerson = *r.ContactPerson
	}
	if r.Phone != nil {
		d.Phone = *r.Phone
	}
	if r.Email != nil {
		d.Email = *r.Email
	}
	if r.Address != nil {
		d.Address = *r.Address
	}
	d.Version = r.Version
}

// --- Response DTOs ---

// DistributorResponse represents a distributor in API responses.
type DistributorResponse struct {
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

// FromDistributor converts domain entity to response DTO.
func FromDistributor(d *distributor.Distributor) *DistributorResponse {
	return &DistributorResponse{
		ID:            d.ID.String(),
		Code:          d.Code,
		Name:          d.Name,
		ContactPerson: d.ContactPerson,
		Phone:         d.Phone,
		Email:         d.Email,
		Address:       d.Address,
		DeletionMark:  d.DeletionMark,
		Version:       d.Version,
	}
}
