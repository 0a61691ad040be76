// Package ledger maintains the signed quantity-delta stock ledger.
//
// The ledger feeds the coarse aggregate stock view used by the sale-time
// stock check and the dashboard. It is deliberately independent of the
// range-subtraction view computed from document notes; the two are not
// reconciled and may disagree when notes are malformed.
package ledger

import (
	"context"

	"allot/internal/core/entity"
	"allot/internal/core/id"
	"allot/internal/core/types"
)

// Balance is the aggregate ledger position of one ticket.
type Balance struct {
	TicketID   id.ID          `db:"ticket_id" json:"ticketId"`
	TicketName string         `db:"ticket_name" json:"ticketName"`
	Quantity   types.Quantity `db:"quantity" json:"quantity"`
}

// Repository is the persistence contract for the stock ledger.
type Repository interface {
	// Append inserts movement rows. Must be called inside the document
	// transaction so header, lines and deltas commit together.
	Append(ctx context.Context, deltas []entity.StockDelta) error

	// DeleteBySource removes every movement written by one document.
	DeleteBySource(ctx context.Context, sourceID id.ID) error

	// GetBalance sums deltas for one ticket.
	GetBalance(ctx context.Context, ticketID id.ID) (types.Quantity, error)

	// CurrentStock sums deltas per ticket, excluding zero balances.
	CurrentStock(ctx context.Context) ([]Balance, error)
}

// Service provides ledger operations to document services and reports.
type Service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append records movements for a document.
func (s *Service) Append(ctx context.Context, deltas []entity.StockDelta) error {
	return s.repo.Append(ctx, deltas)
}

// DeleteBySource removes a document's movements (used on document delete).
func (s *Service) DeleteBySource(ctx context.Context, sourceID id.ID) error {
	return s.repo.DeleteBySource(ctx, sourceID)
}

// GetBalance returns the aggregate stock of one ticket.
func (s *Service) GetBalance(ctx context.Context, ticketID id.ID) (types.Quantity, error) {
	return s.repo.GetBalance(ctx, ticketID)
}

// CurrentStock returns the aggregate stock of every ticket with movements.
func (s *Service) CurrentStock(ctx context.Context) ([]Balance, error) {
	return s.repo.CurrentStock(ctx)
}
