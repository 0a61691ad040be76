// Package distributor provides the Distributor catalog: suppliers that
// purchases are recorded against.
package distributor

import (
	"allot/internal/core/entity"
)

// Distributor is a supplier counterparty. Code holds the generated
// display id (first letter of name + per-letter sequence, e.g. D001).
type Distributor struct {
	entity.Catalog

	ContactPerson string `db:"contact_person" json:"contactPerson,omitempty"`
	Phone         string `db:"phone" json:"phone,omitempty"`
	Email         string `db:"email" json:"email,omitempty"`
	Address       string `db:"address" json:"address,omitempty"`
}

// New creates a distributor. The display id is assigned by the service
// before the first save and is stable afterwards.
func New(name string) *Distributor {
	return &Distributor{
		Catalog: entity.NewCatalog("", name),
	}
}
