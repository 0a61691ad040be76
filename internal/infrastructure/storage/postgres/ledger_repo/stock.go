// Package ledger_repo provides the PostgreSQL implementation of the
// signed stock ledger.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"allot/internal/core/apperror"
	"allot/internal/core/entity"
	"allot/internal/core/id"
	"allot/internal/core/types"
	"allot/internal/domain/ledger"
	"allot/internal/infrastructure/storage/postgres"
)

const ledgerTable = "reg_stock_ledger"

var ledgerColumns = []string{
	"line_id", "source_id", "source_type", "period", "ticket_id",
	"delta", "created_at",
}

// StockLedgerRepo implements ledger.Repository.
type StockLedgerRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockLedgerRepo creates a new stock ledger repository.
func NewStockLedgerRepo(txManager *postgres.TxManager) *StockLedgerRepo {
	return &StockLedgerRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Append batch inserts deltas.
func (r *StockLedgerRepo) Append(ctx context.Context, deltas []entity.StockDelta) error {
	if len(deltas) == 0 {
		return nil
	}

	// Fast path: COPY when inside a transaction.
	if tx := r.txManager.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txManager)
		rows := make([][]any, 0, len(deltas))
		for _, d := range deltas {
			rows = append(rows, []any{
				d.LineID, d.SourceID, string(d.SourceType), d.Period, d.TicketID,
				d.Delta.Int64Scaled(), d.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, ledgerTable, ledgerColumns, rows); err != nil {
			return fmt.Errorf("copy deltas: %w", err)
		}
		return nil
	}

	// Fallback: non-transactional insert. Prefer calling Append within tx.
	q := r.builder.Insert(ledgerTable).Columns(ledgerColumns...)
	for _, d := range deltas {
		q = q.Values(
			d.LineID, d.SourceID, string(d.SourceType), d.Period, d.TicketID,
			d.Delta.Int64Scaled(), d.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// DeleteBySource removes every delta written by a document.
func (r *StockLedgerRepo) DeleteBySource(ctx context.Context, sourceID id.ID) error {
	q := r.builder.Delete(ledgerTable).
		Where(squirrel.Eq{"source_id": sourceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// GetBalance returns the signed sum of deltas for a ticket.
func (r *StockLedgerRepo) GetBalance(ctx context.Context, ticketID id.ID) (types.Quantity, error) {
	sql := `
		SELECT COALESCE(SUM(delta), 0)
		FROM reg_stock_ledger
		WHERE ticket_id = $1
	`

	var balanceScaled int64
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, ticketID).Scan(&balanceScaled)
	if err != nil && err != pgx.ErrNoRows {
		return 0, apperror.NewDatabase(err)
	}

	return types.NewQuantityFromInt64Scaled(balanceScaled), nil
}

// CurrentStock returns the per-ticket signed sums, zero balances excluded.
func (r *StockLedgerRepo) CurrentStock(ctx context.Context) ([]ledger.Balance, error) {
	sql := `
		SELECT l.ticket_id, t.name AS ticket_name, SUM(l.delta) AS quantity
		FROM reg_stock_ledger l
		JOIN cat_tickets t ON t.id = l.ticket_id
		GROUP BY l.ticket_id, t.name
		HAVING SUM(l.delta) <> 0
		ORDER BY t.name
	`

	var balances []ledger.Balance
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &balances, sql); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return balances, nil
}

var _ ledger.Repository = (*StockLedgerRepo)(nil)
