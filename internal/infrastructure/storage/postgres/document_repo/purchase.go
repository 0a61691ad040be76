// Package document_repo provides PostgreSQL implementations for document
// repositories. Each repo also serves as a header source for the stock
// aggregator.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/domain/documents/purchase"
	"allot/internal/domain/stock"
	"allot/internal/infrastructure/storage/postgres"
)

const (
	purchaseTable     = "doc_purchases"
	purchaseLineTable = "doc_purchase_lines"
)

var lineColumns = []string{
	"line_id", "line_no", "ticket_id", "series", "from_no", "to_no",
	"qty", "rate", "amount",
}

// PurchaseRepo implements purchase.Repository and stock.PurchaseSource.
type PurchaseRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the document header.
func (r *PurchaseRepo) Create(ctx context.Context, doc *purchase.Purchase) error {
	q := r.builder.Insert(purchaseTable).
		Columns("id", "number", "date", "distributor_id", "invoice_no",
			"notes", "comment", "total_qty", "total_amount",
			"deletion_mark", "version",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(doc.ID, doc.Number, doc.Date, doc.DistributorID, doc.InvoiceNo,
			doc.Notes, doc.Comment, doc.TotalQty, doc.TotalAmount,
			doc.DeletionMark, doc.Version,
			doc.CreatedAt, doc.UpdatedAt, doc.CreatedBy, doc.UpdatedBy)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// SaveLines replaces the document's lines.
func (r *PurchaseRepo) SaveLines(ctx context.Context, docID id.ID, lines []purchase.Line) error {
	del := r.builder.Delete(purchaseLineTable).
		Where(squirrel.Eq{"document_id": docID})

	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}

	if len(lines) == 0 {
		return nil
	}

	ins := r.builder.Insert(purchaseLineTable).
		Columns("line_id", "document_id", "line_no", "ticket_id", "series",
			"from_no", "to_no", "qty", "rate", "amount")
	for _, line := range lines {
		ins = ins.Values(line.LineID, docID, line.LineNo, line.TicketID, line.Series,
			line.FromNo, line.ToNo, line.Qty, line.Rate, line.Amount)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// GetByID retrieves a document header.
func (r *PurchaseRepo) GetByID(ctx context.Context, docID id.ID) (*purchase.Purchase, error) {
	q := r.builder.Select("id", "number", "date", "distributor_id", "invoice_no",
		"notes", "comment", "total_qty", "total_amount",
		"deletion_mark", "version",
		"created_at", "updated_at", "created_by", "updated_by").
		From(purchaseTable).
		Where(squirrel.Eq{"id": docID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var doc purchase.Purchase
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase", docID)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &doc, nil
}

// GetLines retrieves the document's lines in order.
func (r *PurchaseRepo) GetLines(ctx context.Context, docID id.ID) ([]purchase.Line, error) {
	q := r.builder.Select(lineColumns...).
		From(purchaseLineTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []purchase.Line
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return lines, nil
}

// List retrieves document headers with filtering, newest first.
func (r *PurchaseRepo) List(ctx context.Context, filter purchase.ListFilter) ([]*purchase.Purchase, error) {
	q := r.builder.Select("id", "number", "date", "distributor_id", "invoice_no",
		"notes", "comment", "total_qty", "total_amount",
		"deletion_mark", "version",
		"created_at", "updated_at", "created_by", "updated_by").
		From(purchaseTable).
		Where(squirrel.Eq{"deletion_mark": false})

	if filter.DistributorID != nil {
		q = q.Where(squirrel.Eq{"distributor_id": *filter.DistributorID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	q = q.OrderBy("date DESC", "number DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var docs []*purchase.Purchase
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &docs, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return docs, nil
}

// Delete hard-deletes the header; lines go with it via FK cascade.
func (r *PurchaseRepo) Delete(ctx context.Context, docID id.ID) error {
	q := r.builder.Delete(purchaseTable).
		Where(squirrel.Eq{"id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("purchase", docID)
	}
	return nil
}

// ListForStock returns purchase headers with the distributor name, for
// the stock aggregator and reports.
func (r *PurchaseRepo) ListForStock(ctx context.Context, filter stock.Filter) ([]stock.HeaderRow, error) {
	q := r.builder.Select(
		"p.id",
		"d.name AS counterparty_name",
		"p.date",
		"p.notes",
	).From(purchaseTable + " p").
		Join("cat_distributors d ON d.id = p.distributor_id").
		Where(squirrel.Eq{"p.deletion_mark": false})

	if filter.DistributorID != nil {
		q = q.Where(squirrel.Eq{"p.distributor_id": *filter.DistributorID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"p.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"p.date": *filter.DateTo})
	}

	q = q.OrderBy("p.date", "p.number")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []stock.HeaderRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return rows, nil
}

// ListByTicket returns every purchase whose lines reference the ticket.
func (r *PurchaseRepo) ListByTicket(ctx context.Context, ticketID id.ID) ([]stock.HeaderRow, error) {
	q := r.builder.Select(
		"p.id",
		"d.name AS counterparty_name",
		"p.date",
		"p.notes",
	).From(purchaseTable+" p").
		Join("cat_distributors d ON d.id = p.distributor_id").
		Where(squirrel.Eq{"p.deletion_mark": false}).
		Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM "+purchaseLineTable+" l WHERE l.document_id = p.id AND l.ticket_id = ?)",
			ticketID)).
		OrderBy("p.date", "p.number")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []stock.HeaderRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return rows, nil
}

var (
	_ purchase.Repository  = (*PurchaseRepo)(nil)
	_ stock.PurchaseSource = (*PurchaseRepo)(nil)
)
