package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/domain/catalogs/distributor"
	"allot/internal/infrastructure/storage/postgres"
)

const distributorTable = "cat_distributors"

var counterpartyColumns = []string{
	"id", "code", "name", "contact_person", "phone", "email", "address",
	"deletion_mark", "version",
}

// DistributorRepo implements distributor.Repository.
type DistributorRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewDistributorRepo creates a new distributor repository.
func NewDistributorRepo(txManager *postgres.TxManager) *DistributorRepo {
	return &DistributorRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new distributor.
func (r *DistributorRepo) Create(ctx context.Context, d *distributor.Distributor) error {
	q := r.builder.Insert(distributorTable).
		Columns(counterpartyColumns...).
		Values(d.ID, d.Code, d.Name, d.ContactPerson, d.Phone, d.Email, d.Address,
			d.DeletionMark, d.Version)

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
func (r *DistributorRepo) Update(ctx context.Context, d *distributor.Distributor) error {
	q := r.builder.Update(distributorTable).
		Set("name", d.Name).
		Set("contact_person", d.ContactPerson).
		Set("phone", d.Phone).
		Set("email", d.Email).
		Set("address", d.Address).
		Set("deletion_mark", d.DeletionMark).
		Set("version", d.Version+1).
		Where(squirrel.Eq{"id": d.ID}).
		Where(squirrel.Eq{"version": d.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflict("distributor was modified concurrently").
			WithDetail("id", d.ID.String())
	}
	d.SetVersion(d.Version + 1)
	return nil
}

// GetByID retrieves a distributor by id.
func (r *DistributorRepo) GetByID(ctx context.Context, distributorID id.ID) (*distributor.Distributor, error) {
	q := r.builder.Select(counterpartyColumns...).
		From(distributorTable).
		Where(squirrel.Eq{"id": distributorID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var d distributor.Distributor
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &d, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("distributor", distributorID)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &d, nil
}

// List returns all non-deleted distributors ordered by name.
func (r *DistributorRepo) List(ctx context.Context) ([]*distributor.Distributor, error) {
	q := r.builder.Select(counterpartyColumns...).
		From(distributorTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var distributors []*distributor.Distributor
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &distributors, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return distributors, nil
}

// Delete sets the deletion mark.
func (r *DistributorRepo) Delete(ctx context.Context, distributorID id.ID) error {
	q := r.builder.Update(distributorTable).
		Set("deletion_mark", true).
		Where(squirrel.Eq{"id": distributorID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("distributor", distributorID)
	}
	return nil
}

// MaxCodeForPrefix returns the highest display id within a first-letter
// bucket. Codes are zero padded so lexicographic MAX matches numeric MAX
// up to 999; longer codes win by length first.
func (r *DistributorRepo) MaxCodeForPrefix(ctx context.Context, prefix string) (string, error) {
	return maxCodeForPrefix(ctx, r.txManager, r.builder, distributorTable, prefix)
}

func maxCodeForPrefix(
	ctx context.Context,
	txManager *postgres.TxManager,
	builder squirrel.StatementBuilderType,
	table, prefix string,
) (string, error) {
	q := builder.Select("code").
		From(table).
		Where(squirrel.Like{"code": prefix + "%"}).
		OrderBy("LENGTH(code) DESC", "code DESC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	var code string
	if err := pgxscan.Get(ctx, txManager.GetQuerier(ctx), &code, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return "", nil
		}
		return "", apperror.NewDatabase(err)
	}
	return code, nil
}

var _ distributor.Repository = (*DistributorRepo)(nil)
