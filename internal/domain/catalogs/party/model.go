// Package party provides the Party catalog: customers that sales are
// recorded against.
package party

import (
	"allot/internal/core/entity"
)

// Party is a customer counterparty. Code holds the generated display id
// (first letter of name + per-letter sequence, e.g. P001).
type Party struct {
	entity.Catalog

	ContactPerson string `db:"contact_person" json:"contactPerson,omitempty"`
	Phone         string `db:"phone" json:"phone,omitempty"`
	Email         string `db:"email" json:"email,omitempty"`
	Address       string `db:"address" json:"address,omitempty"`
}

// New creates a party. The display id is assigned by the service before
// the first save and is stable afterwards.
func New(name string) *Party {
	return &Party{
		Catalog: entity.NewCatalog("", name),
	}
}
