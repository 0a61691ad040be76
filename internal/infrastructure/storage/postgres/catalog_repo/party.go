package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/domain/catalogs/party"
	"allot/internal/infrastructure/storage/postgres"
)

const partyTable = "cat_parties"

// PartyRepo implements party.Repository.
type PartyRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewPartyRepo creates a new party repository.
func NewPartyRepo(txManager *postgres.TxManager) *PartyRepo {
	return &PartyRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new party.
func (r *PartyRepo) Create(ctx context.Context, p *party.Party) error {
	q := r.builder.Insert(partyTable).
		Columns(counterpartyColumns...).
		Values(p.ID, p.Code, p.Name, p.ContactPerson, p.Phone, p.Email, p.Address,
			p.DeletionMark, p.Version)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// Update saves changes with optimistic locking.
func (r *PartyRepo) Update(ctx context.Context, p *party.Party) error {
	q := r.builder.Update(partyTable).
		Set("name", p.Name).
		Set("contact_person", p.ContactPerson).
		Set("phone", p.Phone).
		Set("email", p.Email).
		Set("address", p.Address).
		Set("deletion_mark", p.DeletionMark).
		Set("version", p.Version+1).
		Where(squirrel.Eq{"id": p.ID}).
		Where(squirrel.Eq{"version": p.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflict("party was modified concurrently").
			WithDetail("id", p.ID.String())
	}
	p.SetVersion(p.Version + 1)
	return nil
}

// GetByID retrieves a party by id.
func (r *PartyRepo) GetByID(ctx context.Context, partyID id.ID) (*party.Party, error) {
	q := r.builder.Select(counterpartyColumns...).
		From(partyTable).
		Where(squirrel.Eq{"id": partyID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p party.Party
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("party", partyID)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &p, nil
}

// List returns all non-deleted parties ordered by name.
func (r *PartyRepo) List(ctx context.Context) ([]*party.Party, error) {
	q := r.builder.Select(counterpartyColumns...).
		From(partyTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var parties []*party.Party
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &parties, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return parties, nil
}

// Delete sets the deletion mark.
func (r *PartyRepo) Delete(ctx context.Context, partyID id.ID) error {
	q := r.builder.Update(partyTable).
		Set("deletion_mark", true).
		Where(squirrel.Eq{"id": partyID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("party", partyID)
	}
	return nil
}

// MaxCodeForPrefix returns the highest display id within a first-letter bucket.
func (r *PartyRepo) MaxCodeForPrefix(ctx context.Context, prefix string) (string, error) {
	return maxCodeForPrefix(ctx, r.txManager, r.builder, partyTable, prefix)
}

var _ party.Repository = (*PartyRepo)(nil)
