// Package pricing_repo provides the PostgreSQL implementation of the
// price store.
package pricing_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/core/types"
	"allot/internal/domain/pricing"
	"allot/internal/infrastructure/storage/postgres"
)

const (
	distributorPriceTable = "prc_distributor_prices"
	partyPriceTable       = "prc_party_prices"
)

// PriceRepo implements pricing.Repository.
type PriceRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewPriceRepo creates a new price repository.
func NewPriceRepo(txManager *postgres.TxManager) *PriceRepo {
	return &PriceRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetDistributorRate returns the stored purchase rate, NotFound when absent.
func (r *PriceRepo) GetDistributorRate(ctx context.Context, distributorID, ticketID id.ID) (types.Money, error) {
	q := r.builder.Select("rate").
		From(distributorPriceTable).
		Where(squirrel.Eq{"distributor_id": distributorID, "ticket_id": ticketID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build query: %w", err)
	}

	var rate types.Money
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &rate, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return types.Zero(), apperror.NewNotFound("distributor price", ticketID)
		}
		return types.Zero(), apperror.NewDatabase(err)
	}
	return rate, nil
}

// UpsertDistributorPrice stores or replaces a purchase rate.
func (r *PriceRepo) UpsertDistributorPrice(ctx context.Context, price pricing.DistributorPrice) error {
	q := r.builder.Insert(distributorPriceTable).
		Columns("distributor_id", "ticket_id", "rate", "updated_at").
		Values(price.DistributorID, price.TicketID, price.Rate, price.UpdatedAt).
		Suffix("ON CONFLICT (distributor_id, ticket_id) DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// ListDistributorPrices returns every stored rate for a distributor.
func (r *PriceRepo) ListDistributorPrices(ctx context.Context, distributorID id.ID) ([]pricing.DistributorPrice, error) {
	q := r.builder.Select("distributor_id", "ticket_id", "rate", "updated_at").
		From(distributorPriceTable).
		Where(squirrel.Eq{"distributor_id": distributorID}).
		OrderBy("ticket_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var prices []pricing.DistributorPrice
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &prices, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return prices, nil
}

// GetPartyRate returns the stored sale rate, NotFound when absent.
func (r *PriceRepo) GetPartyRate(ctx context.Context, partyID, ticketID id.ID) (types.Money, error) {
	q := r.builder.Select("rate").
		From(partyPriceTable).
		Where(squirrel.Eq{"party_id": partyID, "ticket_id": ticketID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build query: %w", err)
	}

	var rate types.Money
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &rate, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return types.Zero(), apperror.NewNotFound("party price", ticketID)
		}
		return types.Zero(), apperror.NewDatabase(err)
	}
	return rate, nil
}

// UpsertPartyPrice stores or replaces a sale rate.
func (r *PriceRepo) UpsertPartyPrice(ctx context.Context, price pricing.PartyPrice) error {
	q := r.builder.Insert(partyPriceTable).
		Columns("party_id", "ticket_id", "rate", "updated_at").
		Values(price.PartyID, price.TicketID, price.Rate, price.UpdatedAt).
		Suffix("ON CONFLICT (party_id, ticket_id) DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// ListPartyPrices returns every stored rate for a party.
func (r *PriceRepo) ListPartyPrices(ctx context.Context, partyID id.ID) ([]pricing.PartyPrice, error) {
	q := r.builder.Select("party_id", "ticket_id", "rate", "updated_at").
		From(partyPriceTable).
		Where(squirrel.Eq{"party_id": partyID}).
		OrderBy("ticket_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var prices []pricing.PartyPrice
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &prices, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return prices, nil
}

var _ pricing.Repository = (*PriceRepo)(nil)
