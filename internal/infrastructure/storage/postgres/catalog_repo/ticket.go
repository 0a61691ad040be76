// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/domain/catalogs/ticket"
	"allot/internal/infrastructure/storage/postgres"
)

const ticketTable = "cat_tickets"

var ticketColumns = []string{"id", "code", "name", "deletion_mark", "version"}

// TicketRepo implements ticket.Repository.
type TicketRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewTicketRepo creates a new ticket repository.
func NewTicketRepo(txManager *postgres.TxManager) *TicketRepo {
	return &TicketRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new ticket.
func (r *TicketRepo) Create(ctx context.Context, t *ticket.Ticket) error {
	q := r.builder.Insert(ticketTable).
		Columns(ticketColumns...).
		Values(t.ID, t.Code, t.Name, t.DeletionMark, t.Version)

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
func (r *TicketRepo) Update(ctx context.Context, t *ticket.Ticket) error {
	q := r.builder.Update(ticketTable).
		Set("code", t.Code).
		Set("name", t.Name).
		Set("deletion_mark", t.DeletionMark).
		Set("version", t.Version+1).
		Where(squirrel.Eq{"id": t.ID}).
		Where(squirrel.Eq{"version": t.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflict("ticket was modified concurrently").
			WithDetail("id", t.ID.String())
	}
	t.SetVersion(t.Version + 1)
	return nil
}

// GetByID retrieves a ticket by id.
func (r *TicketRepo) GetByID(ctx context.Context, ticketID id.ID) (*ticket.Ticket, error) {
	q := r.builder.Select(ticketColumns...).
		From(ticketTable).
		Where(squirrel.Eq{"id": ticketID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var t ticket.Ticket
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("ticket", ticketID)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &t, nil
}

// GetByName retrieves a ticket by its name.
func (r *TicketRepo) GetByName(ctx context.Context, name string) (*ticket.Ticket, error) {
	q := r.builder.Select(ticketColumns...).
		From(ticketTable).
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var t ticket.Ticket
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("ticket", name)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &t, nil
}

// List returns all non-deleted tickets ordered by name.
func (r *TicketRepo) List(ctx context.Context) ([]*ticket.Ticket, error) {
	q := r.builder.Select(ticketColumns...).
		From(ticketTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var tickets []*ticket.Ticket
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &tickets, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return tickets, nil
}

// Delete sets the deletion mark.
func (r *TicketRepo) Delete(ctx context.Context, ticketID id.ID) error {
	q := r.builder.Update(ticketTable).
		Set("deletion_mark", true).
		Where(squirrel.Eq{"id": ticketID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("ticket", ticketID)
	}
	return nil
}

var _ ticket.Repository = (*TicketRepo)(nil)
