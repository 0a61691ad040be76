// Package ticket provides the Ticket catalog: product types representing
// numbered ranges of items.
package ticket

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"allot/internal/core/apperror"
	"allot/internal/core/entity"
)

// namePattern: uppercase letters followed by digits (M5, D30, E200).
var namePattern = regexp.MustCompile(`^[A-Z]+\d+$`)

// trailingDigits captures the multiplier suffix of a ticket name.
var trailingDigits = regexp.MustCompile(`(\d+)$`)

// Ticket is a product type. The trailing digit run of its name is a
// quantity multiplier: each unit of range length under this ticket
// represents that many physical items (D10 -> 10 items per number).
type Ticket struct {
	entity.Catalog
}

// New creates a ticket. The name is uppercased; Code mirrors the name.
func New(name string) *Ticket {
	name = strings.ToUpper(strings.TrimSpace(name))
	return &Ticket{
		Catalog: entity.NewCatalog(name, name),
	}
}

// Validate implements entity.Validatable.
func (t *Ticket) Validate(ctx context.Context) error {
	if err := t.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !namePattern.MatchString(t.Name) {
		return apperror.NewValidation("ticket name must be uppercase letters followed by digits").
			WithDetail("field", "name").
			WithDetail("value", t.Name)
	}

	return nil
}

// Multiplier returns the quantity multiplier encoded in the name.
func (t *Ticket) Multiplier() int64 {
	return MultiplierFor(t.Name)
}

// MultiplierFor extracts the multiplier from a ticket name: the trailing
// digit run, or 1 when the name carries no digits.
func MultiplierFor(name string) int64 {
	m := trailingDigits.FindString(name)
	if m == "" {
		return 1
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil || n == 0 {
		return 1
	}
	return n
}
