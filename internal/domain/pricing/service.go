// Package pricing stores agreed rates per counterparty and ticket, used
// to pre-fill rate fields during data entry.
package pricing

import (
	"context"
	"time"

	"allot/internal/core/id"
	"allot/internal/core/types"
	"allot/pkg/logger"
)

// DistributorPrice is the purchase rate agreed with a distributor for a ticket.
type DistributorPrice struct {
	DistributorID id.ID       `db:"distributor_id" json:"distributorId"`
	TicketID      id.ID       `db:"ticket_id" json:"ticketId"`
	Rate          types.Money `db:"rate" json:"rate"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updatedAt"`
}

// PartyPrice is the sale rate agreed with a party for a ticket.
type PartyPrice struct {
	PartyID   id.ID       `db:"party_id" json:"partyId"`
	TicketID  id.ID       `db:"ticket_id" json:"ticketId"`
	Rate      types.Money `db:"rate" json:"rate"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
}

// Repository is the persistence contract for prices.
type Repository interface {
	// GetDistributorRate returns NotFound when no price is stored.
	GetDistributorRate(ctx context.Context, distributorID, ticketID id.ID) (types.Money, error)
	UpsertDistributorPrice(ctx context.Context, price DistributorPrice) error
	ListDistributorPrices(ctx context.Context, distributorID id.ID) ([]DistributorPrice, error)

	// GetPartyRate returns NotFound when no price is stored.
	GetPartyRate(ctx context.Context, partyID, ticketID id.ID) (types.Money, error)
	UpsertPartyPrice(ctx context.Context, price PartyPrice) error
	ListPartyPrices(ctx context.Context, partyID id.ID) ([]PartyPrice, error)
}

// Service provides rate lookups and price maintenance.
// Absence of a price is a NotFound the edge maps to rate 0: no prior
// price means the operator fills the field in by hand.
type Service struct {
	repo Repository
}

// NewService creates a new pricing service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetPurchaseRate returns the stored purchase rate for a distributor and ticket.
func (s *Service) GetPurchaseRate(ctx context.Context, distributorID, ticketID id.ID) (types.Money, error) {
	return s.repo.GetDistributorRate(ctx, distributorID, ticketID)
}

// GetSaleRate returns the stored sale rate for a party and ticket.
func (s *Service) GetSaleRate(ctx context.Context, partyID, ticketID id.ID) (types.Money, error) {
	return s.repo.GetPartyRate(ctx, partyID, ticketID)
}

// SetDistributorPrice stores or replaces a purchase rate.
func (s *Service) SetDistributorPrice(ctx context.Context, distributorID, ticketID id.ID, rate types.Money) error {
	price := DistributorPrice{
		DistributorID: distributorID,
		TicketID:      ticketID,
		Rate:          rate,
		UpdatedAt:     time.Now().UTC(),
	}
	if err := s.repo.UpsertDistributorPrice(ctx, price); err != nil {
		return err
	}

	logger.Info(ctx, "distributor price set",
		"distributor_id", distributorID,
		"ticket_id", ticketID,
		"rate", rate)
	return nil
}

// SetPartyPrice stores or replaces a sale rate.
func (s *Service) SetPartyPrice(ctx context.Context, partyID, ticketID id.ID, rate types.Money) error {
	price := PartyPrice{
		PartyID:   partyID,
		TicketID:  ticketID,
		Rate:      rate,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.UpsertPartyPrice(ctx, price); err != nil {
		return err
	}

	logger.Info(ctx, "party price set",
		"party_id", partyID,
		"ticket_id", ticketID,
		"rate", rate)
	return nil
}

// ListDistributorPrices returns every stored rate for a distributor.
func (s *Service) ListDistributorPrices(ctx context.Context, distributorID id.ID) ([]DistributorPrice, error) {
	return s.repo.ListDistributorPrices(ctx, distributorID)
}

// ListPartyPrices returns every stored rate for a party.
func (s *Service) ListPartyPrices(ctx context.Context, partyID id.ID) ([]PartyPrice, error) {
	return s.repo.ListPartyPrices(ctx, partyID)
}
